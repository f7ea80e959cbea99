package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Project represents one generated website: the file map produced by an AI
// provider plus the metadata of the generation that produced it.
type Project struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string                      `json:"name" gorm:"type:text;not null"`
	Description string                      `json:"description" gorm:"type:text"`
	WebsiteType string                      `json:"website_type" gorm:"type:text;not null"`
	Provider    string                      `json:"provider" gorm:"type:text;not null"`
	Files       datatypes.JSONMap           `json:"files" gorm:"type:jsonb"`
	Metadata    datatypes.JSONMap           `json:"metadata" gorm:"type:jsonb"`
	Tags        datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	UserID      *string                     `json:"user_id,omitempty" gorm:"type:text;index"`
	IsPublic    bool                        `json:"is_public"`
	Embedding   *pgvector.Vector            `json:"-" gorm:"type:vector(1536)"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// Prepare assigns an ID if the project does not have one yet.
func (p *Project) Prepare() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
}

// FileMap returns the stored files as filename -> content, skipping any
// non-string values that may have crept into the jsonb column.
func (p *Project) FileMap() map[string]string {
	files := make(map[string]string, len(p.Files))
	for name, content := range p.Files {
		if s, ok := content.(string); ok {
			files[name] = s
		}
	}
	return files
}

// MainHTML returns the content of the project's entry page: index.html when
// present, otherwise the first HTML file found.
func (p *Project) MainHTML() string {
	files := p.FileMap()
	if content, ok := files["index.html"]; ok {
		return content
	}
	for name, content := range files {
		if strings.HasSuffix(strings.ToLower(name), ".html") {
			return content
		}
	}
	return ""
}

// FilesJSON converts a plain file map into the jsonb representation used by
// the Files column.
func FilesJSON(files map[string]string) datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(files))
	for name, content := range files {
		m[name] = content
	}
	return m
}
