package entities

// SchemaMeta records which schema version the store was built with.
type SchemaMeta struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}

func (SchemaMeta) TableName() string { return "schema_meta" }
