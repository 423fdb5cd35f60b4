// Package store defines the persistence contracts for users, profiles,
// the card catalog, per-card progress, and review logs, along with the
// sentinel errors implementations map database failures to. The catalog
// interfaces (CardStore, LevelStore) are read-only because that data is
// seeded by migrations; the mutable stores expose WithTx so the service
// layer can compose them inside a single transaction.
package store
