package domain

// Table is a mongo collection name
type Table string

const (
	TableItems            Table = "items"
	TableOffers           Table = "offers"
	TableAuctions         Table = "auctions"
	TableHistories        Table = "histories"
	TableCollections      Table = "collections"
	TableWallets          Table = "wallets"
	TablePendingTransfers Table = "pending_transfers"
)
