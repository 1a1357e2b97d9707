package main

import "github.com/adanyl0v/go-errands/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()
	app.MustMigratePostgres()

	app.ConnectRedis()
	defer app.DisconnectRedis()

	app.MustListenAndServeHTTP()
}
