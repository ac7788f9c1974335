// Command seed populates the document store with fake dating profiles for
// local development. It also records a few mutual likes so the matches
// screen has content out of the box.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kindling/internal/config"
	"kindling/internal/models"
	"kindling/internal/repository"
	"kindling/internal/store"
)

const seedPassword = "kindling-dev1"

func main() {
	count := flag.Int("count", 25, "number of profiles to create")
	matches := flag.Int("matches", 3, "number of mutual likes to record")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongo, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout())
	if err != nil {
		log.Fatalf("Document store connection failed: %v", err)
	}
	defer func() { _ = mongo.Close(context.Background()) }()

	profiles := repository.NewProfileRepository(mongo)
	swipes := repository.NewSwipeLedger(mongo)
	matchRepo := repository.NewMatchRepository(mongo)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("Hashing seed password failed: %v", err)
	}

	users := make([]*models.User, 0, *count)
	for i := 0; i < *count; i++ {
		person := gofakeit.Person()
		user := &models.User{
			UID:        uuid.NewString(),
			Name:       person.FirstName + " " + person.LastName,
			Email:      fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Age:        gofakeit.Number(18, 50),
			Profession: gofakeit.JobTitle(),
			Bio:        gofakeit.Quote(),
			ImageURLs: []string{
				fmt.Sprintf("https://picsum.photos/seed/%s/600/800", uuid.NewString()[:8]),
				fmt.Sprintf("https://picsum.photos/seed/%s/600/800", uuid.NewString()[:8]),
			},
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
		user.ApplyDefaults()

		if err := profiles.Save(ctx, user); err != nil {
			log.Fatalf("Saving profile %d failed: %v", i, err)
		}
		users = append(users, user)
	}

	// Pair up the first 2*matches users as mutual likes.
	created := 0
	for i := 0; i+1 < len(users) && created < *matches; i += 2 {
		a, b := users[i], users[i+1]
		if err := swipes.Record(ctx, a.UID, b.UID, true); err != nil {
			log.Fatalf("Recording swipe failed: %v", err)
		}
		if err := swipes.Record(ctx, b.UID, a.UID, true); err != nil {
			log.Fatalf("Recording swipe failed: %v", err)
		}

		now := time.Now()
		forA, err := models.NewMatchSummary(a.UID, b, now)
		if err != nil {
			log.Fatalf("Building match record failed: %v", err)
		}
		forB, err := models.NewMatchSummary(b.UID, a, now)
		if err != nil {
			log.Fatalf("Building match record failed: %v", err)
		}
		if err := matchRepo.Put(ctx, forA); err != nil {
			log.Fatalf("Writing match record failed: %v", err)
		}
		if err := matchRepo.Put(ctx, forB); err != nil {
			log.Fatalf("Writing match record failed: %v", err)
		}
		created++
	}

	log.Printf("Seeded %d profiles and %d matches (password %q)", len(users), created, seedPassword)
}
