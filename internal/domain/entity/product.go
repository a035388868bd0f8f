package entity

import "time"

// ProductStatus tracks where a product batch is in its lifecycle.
// Transitions are monotonic: ACTIVE may become COMPLETED or FINALIZED,
// COMPLETED may become FINALIZED, and FINALIZED is terminal.
type ProductStatus string

const (
	// StatusActive is the initial status of every registered batch.
	StatusActive ProductStatus = "ACTIVE"
	// StatusCompleted marks a batch purchased by its final consumer.
	StatusCompleted ProductStatus = "COMPLETED"
	// StatusFinalized marks a batch whose history has been sealed by a
	// consumer verification scan. No further transitions exist.
	StatusFinalized ProductStatus = "FINALIZED"
)

// Role labels written into server-authored transactions. History entries use
// capitalized display labels, a vocabulary distinct from the lowercase auth
// Role enum.
const (
	TransactionRoleFarmer   = "Farmer"
	TransactionRoleConsumer = "Consumer"
)

// Transaction is one immutable handling or custody event in a product's history.
// Once appended to a product it is never mutated or removed.
type Transaction struct {
	TransactionID    string    `json:"transactionId"`
	Role             string    `json:"role"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	Timestamp        time.Time `json:"timestamp"`
	HandlingInfo     string    `json:"handlingInfo"`
	FinalTransaction bool      `json:"finalTransaction,omitempty"`
}

// Product is a registered batch of agricultural produce tracked through
// custody changes. The descriptive attributes are immutable after
// registration; only the transaction log, status and bookkeeping
// timestamps change.
type Product struct {
	ProductID      string        `json:"productId"`
	ProductType    string        `json:"productType"`
	Variety        string        `json:"variety"`
	BatchSize      string        `json:"batchSize"`
	HarvestDate    string        `json:"harvestDate"`
	BasePrice      float64       `json:"basePrice"`
	Certifications []string      `json:"certifications"`
	Status         ProductStatus `json:"status"`
	Finalized      bool          `json:"finalized"`
	Transactions   []Transaction `json:"transactions"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	FinalizedAt    *time.Time    `json:"finalizedAt,omitempty"`
	FinalizedBy    string        `json:"finalizedBy,omitempty"`
}

// Clone returns a deep copy of the product. The ledger owns all product
// instances exclusively; every read handed outside the store goes through
// Clone so callers never hold a mutable reference into ledger state.
func (p *Product) Clone() *Product {
	clone := *p

	clone.Transactions = make([]Transaction, len(p.Transactions))
	copy(clone.Transactions, p.Transactions)

	if p.Certifications != nil {
		clone.Certifications = make([]string, len(p.Certifications))
		copy(clone.Certifications, p.Certifications)
	}

	if p.FinalizedAt != nil {
		finalizedAt := *p.FinalizedAt
		clone.FinalizedAt = &finalizedAt
	}

	return &clone
}

// LatestTransaction returns the most recently appended transaction, or nil
// for a product with an empty log. A registered product always has at
// least its Farmer registration event.
func (p *Product) LatestTransaction() *Transaction {
	if len(p.Transactions) == 0 {
		return nil
	}

	return &p.Transactions[len(p.Transactions)-1]
}
