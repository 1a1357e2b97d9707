package postgres

import (
	"context"

	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/storage"
)

func (s *Store) InsertBid(ctx context.Context, bid *models.Bid) error {
	const insertBidQuery = `
INSERT INTO bids (task_id,
                  bidder_id,
                  amount,
                  time_estimate,
                  created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	err := s.q.QueryRow(
		ctx,
		insertBidQuery,
		bid.TaskID,
		bid.BidderID,
		bid.Amount,
		bid.TimeEstimate,
		bid.CreatedAt,
	).Scan(&bid.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", bid.TaskID).
			Str("bidder_id", bid.BidderID).
			Msg("failed to insert bid")
		return translateError(err)
	}
	s.logger.Debug().
		Int64("bid_id", bid.ID).
		Msg("inserted bid")
	return nil
}

func (s *Store) SelectBid(ctx context.Context, id int64) (*models.Bid, error) {
	const selectBidQuery = `
SELECT id,
       task_id,
       bidder_id,
       amount,
       time_estimate,
       created_at
FROM bids
WHERE id = $1
`
	bid := new(models.Bid)
	err := s.q.QueryRow(ctx, selectBidQuery, id).Scan(
		&bid.ID,
		&bid.TaskID,
		&bid.BidderID,
		&bid.Amount,
		&bid.TimeEstimate,
		&bid.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("bid_id", id).
			Msg("failed to select bid")
		return nil, err
	}
	return bid, nil
}

func (s *Store) SelectBidsByTaskID(ctx context.Context, taskID int64) ([]*models.BidView, error) {
	const selectBidsByTaskIDQuery = `
SELECT b.id,
       b.task_id,
       b.bidder_id,
       b.amount,
       b.time_estimate,
       b.created_at,
       u.email
FROM bids b
JOIN users u ON u.id = b.bidder_id
WHERE b.task_id = $1
ORDER BY b.created_at, b.id
`
	rows, err := s.q.Query(ctx, selectBidsByTaskIDQuery, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select bids by task id")
		return nil, err
	}
	defer rows.Close()

	bids := make([]*models.BidView, 0)
	for rows.Next() {
		bid := new(models.BidView)
		err = rows.Scan(
			&bid.ID,
			&bid.TaskID,
			&bid.BidderID,
			&bid.Amount,
			&bid.TimeEstimate,
			&bid.CreatedAt,
			&bid.BidderEmail,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan bid")
			return nil, err
		}
		bids = append(bids, bid)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", taskID).
		Int("count", len(bids)).
		Msg("selected bids by task id")
	return bids, nil
}
