package models

import "time"

// MigrationMode indica cómo se aplican los apodos durante una migración masiva
type MigrationMode string

const (
	// MigrationNormal solo renombra miembros sin apodo personalizado
	MigrationNormal MigrationMode = "normal"
	// MigrationForce sobrescribe todos los apodos elegibles
	MigrationForce MigrationMode = "force"
)

// MigrationRun acumula los contadores de una pasada de renombrado masivo.
// Se muta durante la ejecución y el resumen final es la única salida durable.
type MigrationRun struct {
	GuildID   string        `json:"guildId"`
	Mode      MigrationMode `json:"mode"`
	Total     int           `json:"total"`
	Processed int           `json:"processed"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	StartedAt time.Time     `json:"startedAt"`
}

// Remaining returns the number of members not yet processed
func (r *MigrationRun) Remaining() int {
	return r.Total - r.Processed
}

// EstimatedRemaining estimates the minutes left assuming one update per second
func (r *MigrationRun) EstimatedRemaining() int {
	remaining := r.Remaining()
	if remaining <= 0 {
		return 0
	}
	return (remaining + 59) / 60
}
