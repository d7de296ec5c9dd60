package models

import "time"

// WarnRecord representa una advertencia individual de un usuario.
// Los registros son inmutables una vez creados.
type WarnRecord struct {
	Moderator string    `bson:"moderator" json:"moderator"`
	Reason    string    `bson:"reason" json:"reason"`
	IssuedAt  time.Time `bson:"issuedAt" json:"issuedAt"`
}
