// Package mongo stores cookie attribute documents in MongoDB.
//
// Key features:
//   - Environment-driven configuration via github.com/caarlos0/env
//   - Connection retries in New
//   - Storage, a cookie.Storage with one document per cookie and a TTL index
//   - Health check for readiness probes
//
// # Usage
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store := mongo.NewStorage(db, cfg)
//	if err := store.EnsureIndexes(ctx); err != nil {
//		log.Fatal(err)
//	}
//	m := cookie.New(doc, store)
//
// # Error Handling
//
// Connection failures wrap ErrFailedToConnectToMongo and storage failures
// wrap ErrStorage; use errors.Is to match them. A missing or expired key
// reads as nil.
package mongo
