package domain

import "time"

type TableStatus string

const (
	TableStatusAvailable TableStatus = "AVAILABLE"
	TableStatusOccupied  TableStatus = "OCCUPIED"
	TableStatusReserved  TableStatus = "RESERVED"
)

type Table struct {
	ID        int
	Number    int
	Status    TableStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
