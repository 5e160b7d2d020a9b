package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/connexo-app/backend/config"
	"github.com/connexo-app/backend/internal/database"
	"github.com/connexo-app/backend/internal/models"
	"github.com/connexo-app/backend/internal/types"
)

// Seeds a couple of demo accounts with populated profile pages for
// local development. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	demos := []struct {
		name     string
		email    string
		username string
		title    string
		role     string
		bio      string
		links    []types.Link
	}{
		{
			name:     "Jane Doe",
			email:    "jane.doe@example.com",
			username: "janedoe",
			title:    "Jane Doe",
			role:     "Photographer",
			bio:      "Capturing light, one frame at a time",
			links: []types.Link{
				{ID: "1", Title: "Portfolio", URL: "https://janedoe.example.com", Icon: "globe", IsActive: true},
				{ID: "2", Title: "Instagram", URL: "https://instagram.com/janedoe", Icon: "instagram", IsActive: true},
				{ID: "3", Title: "YouTube", URL: "https://youtube.com/@janedoe", Icon: "youtube", IsActive: true},
			},
		},
		{
			name:     "Bob Wilson",
			email:    "bob.wilson@example.com",
			username: "bobwilson",
			title:    "Bob Wilson",
			role:     "Indie Developer",
			bio:      "Building small tools for the open web",
			links: []types.Link{
				{ID: "1", Title: "GitHub", URL: "https://github.com/bobwilson", Icon: "github", IsActive: true},
				{ID: "2", Title: "Blog", URL: "https://bobwilson.example.com", Icon: "globe", IsActive: true},
			},
		},
	}

	docs := database.NewDocumentStore(db)
	ctx := context.Background()

	for _, demo := range demos {
		var existing models.User
		if err := db.Where("email = ?", demo.email).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping...", demo.email)
			continue
		}

		user := models.User{
			ID:           uuid.New(),
			Name:         demo.name,
			Email:        demo.email,
			PasswordHash: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", demo.email, err)
			continue
		}

		doc := types.DefaultDocument()
		doc.Username = demo.username
		doc.Links = demo.links
		doc.Appearance.Title = demo.title
		doc.Appearance.Role = demo.role
		doc.Appearance.Bio = demo.bio
		doc.ContactData = types.ContactInfo{Email: demo.email}

		data, err := json.Marshal(doc)
		if err != nil {
			log.Printf("Failed to encode document for %s: %v", demo.email, err)
			continue
		}
		if err := docs.SaveDocument(ctx, user.ID, doc.Username, data); err != nil {
			log.Printf("Failed to save document for %s: %v", demo.email, err)
			continue
		}

		log.Printf("Created %s -> /u/%s", demo.email, demo.username)
	}

	log.Println("Seed complete. Password for all demo accounts: testpassword123")
}
