package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Collections partition the chunk table per assistant.
const (
	CollectionGrants = "grant_documents"
	CollectionDrugs  = "drug_documents"
)

// DocumentChunk is one embedded chunk of an ingested document.
type DocumentChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Collection string          `gorm:"type:varchar(64);not null;index"`
	Content    string          `gorm:"type:text"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 are 768-dim

	Source       string `gorm:"type:text;index"`
	Filename     string `gorm:"type:text"`
	PageNumber   int    `gorm:"default:0"`
	GrantGroup   string `gorm:"type:varchar(128)"`
	DocumentType string `gorm:"type:varchar(64)"`
	ChunkIndex   int    `gorm:"default:0"`
	DrugName     string `gorm:"type:varchar(128)"`

	Extra datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
