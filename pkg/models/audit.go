package models

import "time"

// AuditField es un campo extra adjunto a una entrada de auditoría
// (por ejemplo "Total Warnings" o "Duration")
type AuditField struct {
	Name   string `bson:"name" json:"name"`
	Value  string `bson:"value" json:"value"`
	Inline bool   `bson:"inline" json:"inline"`
}

// AuditEntry representa el documento de la colección "audit_log".
// La colección es de solo inserción: nunca se actualiza ni se borra.
type AuditEntry struct {
	GuildID     string       `bson:"guildId" json:"guildId"`
	Action      string       `bson:"action" json:"action"`
	TargetID    string       `bson:"targetId" json:"targetId"`
	TargetTag   string       `bson:"targetTag" json:"targetTag"`
	ModeratorID string       `bson:"moderatorId" json:"moderatorId"`
	Moderator   string       `bson:"moderator" json:"moderator"`
	Reason      string       `bson:"reason" json:"reason"`
	Fields      []AuditField `bson:"fields,omitempty" json:"fields,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
}
