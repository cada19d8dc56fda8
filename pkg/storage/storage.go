package storage

// Storage is everything the DynamoDB store provides to the API and to the
// background workers. The reconciler depends on it in tests; production code
// takes the narrower ApiStore or SettlementStore.
type Storage interface {
	ApiStore
	SettlementStore
}
