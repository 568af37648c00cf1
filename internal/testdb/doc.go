// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database: locating the database from DATABASE_URL,
// applying the embedded goose migrations, and running each test inside a
// transaction that is rolled back afterwards.
//
// Typical use from a package's TestMain:
//
//	if !testdb.IsIntegrationTestEnvironment() {
//		os.Exit(0)
//	}
//
// and from a test:
//
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		tasks := postgres.NewPostgresTaskStore(tx, nil)
//		...
//	})
package testdb
