// Command seed populates the database with the service category catalogue,
// a few demo artisans and the initial admin account. Safe to run repeatedly:
// existing documents are skipped.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrayfi/hrayfi_backend/config"
	"github.com/hrayfi/hrayfi_backend/models"
	"github.com/hrayfi/hrayfi_backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := config.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(config.DatabaseName())

	categoryIDs, err := seedCategories(ctx, db)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	if err := seedArtisans(ctx, db, categoryIDs); err != nil {
		log.Fatalf("Failed to seed artisans: %v", err)
	}
	if err := seedRequests(ctx, db, categoryIDs); err != nil {
		log.Fatalf("Failed to seed client requests: %v", err)
	}
	if err := seedAdmin(ctx, db); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	log.Println("Seeding complete")
}

func seedCategories(ctx context.Context, db *mongo.Database) (map[string]primitive.ObjectID, error) {
	categories := []models.ServiceCategory{
		{Name: "Plomberie", Description: "Installation et réparation de plomberie", Icon: "wrench", Order: 1},
		{Name: "Électricité", Description: "Travaux électriques et dépannage", Icon: "zap", Order: 2},
		{Name: "Peinture", Description: "Peinture intérieure et extérieure", Icon: "paint-roller", Order: 3},
		{Name: "Menuiserie", Description: "Menuiserie bois et aluminium", Icon: "hammer", Order: 4},
		{Name: "Carrelage", Description: "Pose de carrelage et revêtements", Icon: "grid", Order: 5},
		{Name: "Climatisation", Description: "Installation et entretien de climatisation", Icon: "wind", Order: 6},
		{Name: "Jardinage", Description: "Entretien de jardins et espaces verts", Icon: "leaf", Order: 7},
		{Name: "Maçonnerie", Description: "Travaux de construction et rénovation", Icon: "brick", Order: 8},
	}

	coll := db.Collection("serviceCategories")
	ids := make(map[string]primitive.ObjectID)
	now := time.Now()

	for _, category := range categories {
		category.Slug = utils.Slugify(category.Name)
		category.IsActive = true
		category.CreatedAt = now
		category.UpdatedAt = now

		var existing models.ServiceCategory
		err := coll.FindOne(ctx, bson.M{"slug": category.Slug}).Decode(&existing)
		if err == nil {
			ids[category.Slug] = existing.ID
			continue
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}

		result, err := coll.InsertOne(ctx, category)
		if err != nil {
			return nil, err
		}
		ids[category.Slug] = result.InsertedID.(primitive.ObjectID)
		log.Printf("Created category %q", category.Name)
	}
	return ids, nil
}

func seedArtisans(ctx context.Context, db *mongo.Database, categoryIDs map[string]primitive.ObjectID) error {
	experience := func(years int) *int { return &years }
	rate := func(r float64) *float64 { return &r }

	artisans := []models.Artisan{
		{
			FirstName: "Ahmed", LastName: "Alami",
			Email: "ahmed.alami@example.com", Phone: "+212612345678",
			Profession: "Plombier",
			Categories: []primitive.ObjectID{categoryIDs["plomberie"]},
			City:       "Casablanca", Experience: experience(8), HourlyRate: rate(150),
			Availability: models.AvailabilityImmediate, Rating: 4.6, ReviewCount: 23,
			Skills: []string{"Débouchage", "Installation sanitaire", "Chauffe-eau"},
		},
		{
			FirstName: "Youssef", LastName: "Benali",
			Email: "youssef.benali@example.com", Phone: "+212623456789",
			Profession: "Électricien",
			Categories: []primitive.ObjectID{categoryIDs[utils.Slugify("Électricité")]},
			City:       "Rabat", Experience: experience(12), HourlyRate: rate(180),
			Availability: models.AvailabilityOneWeek, Rating: 4.8, ReviewCount: 41,
			Skills: []string{"Tableaux électriques", "Domotique"},
		},
		{
			FirstName: "Fatima", LastName: "Zahra",
			Email: "fatima.zahra@example.com", Phone: "+212634567890",
			Profession: "Peintre",
			Categories: []primitive.ObjectID{categoryIDs["peinture"]},
			City:       "Marrakech", Experience: experience(5), HourlyRate: rate(120),
			Availability: models.AvailabilityImmediate, Rating: 4.4, ReviewCount: 17,
			Skills: []string{"Peinture décorative", "Tadelakt"},
		},
	}

	coll := db.Collection("artisans")
	now := time.Now()

	for _, artisan := range artisans {
		artisan.IsActive = true
		artisan.IsAvailable = true
		artisan.CreatedAt = now
		artisan.UpdatedAt = now

		err := coll.FindOne(ctx, bson.M{"email": artisan.Email}).Err()
		if err == nil {
			continue
		}
		if err != mongo.ErrNoDocuments {
			return err
		}

		if _, err := coll.InsertOne(ctx, artisan); err != nil {
			return err
		}
		log.Printf("Created artisan %s %s", artisan.FirstName, artisan.LastName)
	}
	return nil
}

func seedRequests(ctx context.Context, db *mongo.Database, categoryIDs map[string]primitive.ObjectID) error {
	budget := func(min, max float64) *models.Budget {
		return &models.Budget{Min: &min, Max: &max, Currency: "MAD"}
	}

	requests := []models.ClientRequest{
		{
			ClientName: "Sara Idrissi", ClientEmail: "sara.idrissi@example.com",
			ClientPhone: "0645678901",
			ServiceCategory: categoryIDs["plomberie"], ServiceType: "Fuite d'eau",
			Description: "Fuite sous l'évier de la cuisine, intervention rapide souhaitée.",
			City:        "Casablanca", Budget: budget(200, 600),
			Priority: models.PriorityHigh, IsUrgent: true,
		},
		{
			ClientName: "Karim Tazi", ClientEmail: "karim.tazi@example.com",
			ClientPhone: "0656789012",
			ServiceCategory: categoryIDs["peinture"], ServiceType: "Peinture salon",
			Description: "Peinture complète d'un salon de 25m², murs et plafond.",
			City:        "Rabat", Budget: budget(1500, 3000),
			Priority: models.PriorityMedium,
		},
	}

	coll := db.Collection("clientRequests")
	now := time.Now()

	for _, request := range requests {
		request.Status = models.RequestStatusPending
		request.ContactedArtisans = []models.ContactedArtisan{}
		request.Source = "seed"
		request.CreatedAt = now
		request.UpdatedAt = now

		err := coll.FindOne(ctx, bson.M{"clientEmail": request.ClientEmail}).Err()
		if err == nil {
			continue
		}
		if err != mongo.ErrNoDocuments {
			return err
		}

		if _, err := coll.InsertOne(ctx, request); err != nil {
			return err
		}
		log.Printf("Created client request for %s", request.ClientName)
	}
	return nil
}

func seedAdmin(ctx context.Context, db *mongo.Database) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	coll := db.Collection("admins")

	err := coll.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	if _, err := coll.InsertOne(ctx, models.Admin{
		Email:     email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return err
	}
	log.Printf("Created admin account %s", email)
	return nil
}
