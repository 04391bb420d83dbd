package model

import "time"

type SignalType string

const (
	SignalTypeFree    SignalType = "free"
	SignalTypePremium SignalType = "premium"
)

func (st SignalType) Valid() bool {
	return st == SignalTypeFree || st == SignalTypePremium
}

// Signal is an advisory post. Immutable once created.
type Signal struct {
	Id          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        SignalType       `json:"type"`
	Creator     *DisplayableUser `json:"creator"`
	CreatedAt   time.Time        `json:"createdAt"`
}
