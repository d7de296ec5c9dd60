package models

import "time"

// TicketStatus representa el estado del ciclo de vida de un ticket
type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// Ticket representa un canal de soporte abierto para un incidente.
// ChannelID es el identificador del canal de Discord que respalda el ticket.
type Ticket struct {
	ChannelID string       `bson:"channelId" json:"channelId"`
	UserID    string       `bson:"userId" json:"userId"`
	Reason    string       `bson:"reason" json:"reason"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
	Status    TicketStatus `bson:"status" json:"status"`
}
