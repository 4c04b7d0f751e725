package model

// Attachment — метаданные вложения шифра. Само бинарное содержимое
// хранится вне этого сервиса.
type Attachment struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	CipherID string `gorm:"not null;type:uuid;index"`
	FileName string `gorm:"not null"`
	FileSize int64  `gorm:"not null;default:0"`
}
