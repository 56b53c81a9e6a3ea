// Package pg provides PostgreSQL connection management with migrations and health checking.
//
// It wraps the pgx driver with startup retry logic, pool tuning and the
// embedded goose migrations from store/migrations.
//
//   - Connect: creates a pool with exponential-backoff retries and a verifying ping
//   - Migrate: applies the PostgreSQL migrations through a database/sql view of the pool
//   - Healthcheck: returns a ping function for the /health endpoint
//   - IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError, IsTxClosedError
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, log); err != nil {
//		return err
//	}
//
// # Transactions
//
// WithTx attaches a pgx.Tx to a context and TxFromContext retrieves it, so
// repositories can join a transaction started by the caller:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	ctx = pg.WithTx(ctx, tx)
//	if err := repo.CreateUser(ctx, u); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
package pg
