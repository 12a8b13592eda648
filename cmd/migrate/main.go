package main

import (
	"fmt"
	"log"

	"voice-journal-be/internal/config"
	"voice-journal-be/internal/model"
	"voice-journal-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment == "production")
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Installing pgvector extension...")
	if err := database.EnsureVectorExtension(db); err != nil {
		log.Fatalf("Error: pgvector is required: %v", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.Note{}, &model.NoteEmbedding{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating indexes...")
	postMigrationSQL := []string{
		// The model declares vector(768); resize for other embedders.
		fmt.Sprintf(`ALTER TABLE note_embeddings ALTER COLUMN embedding_value TYPE vector(%d);`, cfg.Rag.EmbeddingDimension),
		`CREATE INDEX IF NOT EXISTS idx_notes_tags ON notes USING GIN (tags jsonb_path_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_note_embeddings_cosine ON note_embeddings USING hnsw (embedding_value vector_cosine_ops);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
