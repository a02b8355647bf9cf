package models

import (
	"time"
)

// Account represents a token account owned by the ledger
type Account struct {
	DiscordID int64     `db:"discord_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
