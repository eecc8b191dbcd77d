package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pawpost/pawpost/internal/db"
	"github.com/pawpost/pawpost/internal/models"
	"github.com/pawpost/pawpost/pkg/config"
	"github.com/pawpost/pawpost/pkg/logging"
)

// Migrates the schema and seeds demo profiles, a group, posts, and
// engagement so a fresh install has a non-empty feed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Pawpost seeder")

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&models.Profile{},
		&models.Group{},
		&models.Post{},
		&models.Like{},
		&models.HelpfulMark{},
		&models.Comment{},
		&models.Board{},
		&models.SavedPost{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("Schema migrated")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, database, logger); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Info("Seeding complete")
}

func seed(ctx context.Context, database *db.DB, logger *zap.Logger) error {
	var count int64
	if err := database.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Profiles already present, skipping seed", zap.Int64("count", count))
		return nil
	}

	repo := db.NewRepository(database.DB)
	profiles := db.NewProfileRepository(repo)
	groups := db.NewGroupRepository(repo)
	posts := db.NewPostRepository(repo)
	likes := db.NewLikeRepository(repo)
	comments := db.NewCommentRepository(repo)

	luna := &models.Profile{
		Username: "luna_and_max",
		Bio:      sql.NullString{String: "Golden retriever mom, always up for park meetups", Valid: true},
		City:     sql.NullString{String: "Portland", Valid: true},
		PetType:  sql.NullString{String: "dog", Valid: true},
	}
	milo := &models.Profile{
		Username: "milo_the_tabby",
		Bio:      sql.NullString{String: "Indoor cat enthusiast and amateur photographer", Valid: true},
		City:     sql.NullString{String: "Portland", Valid: true},
		PetType:  sql.NullString{String: "cat", Valid: true},
	}
	shop := &models.Profile{
		Username:         "pawsitive_grooming",
		IsBusiness:       true,
		Points:           100,
		BusinessName:     sql.NullString{String: "Pawsitive Grooming", Valid: true},
		BusinessCategory: sql.NullString{String: "Grooming", Valid: true},
		City:             sql.NullString{String: "Portland", Valid: true},
	}
	for _, p := range []*models.Profile{luna, milo, shop} {
		if err := profiles.Create(ctx, p); err != nil {
			return err
		}
	}

	parkGroup := &models.Group{
		OwnerID:     luna.ID,
		Name:        "Portland Dog Parks",
		Description: sql.NullString{String: "Meetups and park reviews around town", Valid: true},
		City:        sql.NullString{String: "Portland", Valid: true},
		IsCommunity: true,
	}
	if err := groups.Create(ctx, parkGroup); err != nil {
		return err
	}

	intro := &models.Post{
		AuthorID: luna.ID,
		Content:  "Max just learned to fetch his leash before walks. Proudest moment of the week!",
	}
	tip := &models.Post{
		AuthorID: milo.ID,
		Content:  "Tip for new cat owners: a cardboard box beats any toy you can buy.",
	}
	promo := &models.Post{
		AuthorID:   shop.ID,
		Content:    "Spring special at Pawsitive Grooming: bring a friend, both pups get the deluxe wash.",
		BoostUntil: sql.NullTime{Time: time.Now().UTC().Add(24 * time.Hour), Valid: true},
		BoostLevel: sql.NullInt64{Int64: 2, Valid: true},
	}
	groupPost := &models.Post{
		AuthorID: luna.ID,
		GroupID:  sql.NullInt64{Int64: parkGroup.ID, Valid: true},
		Content:  "Anyone at Laurelhurst park this Saturday morning?",
	}
	for _, p := range []*models.Post{intro, tip, promo, groupPost} {
		if err := posts.Create(ctx, p); err != nil {
			return err
		}
	}

	if err := likes.Insert(ctx, milo.ID, intro.ID); err != nil {
		return err
	}
	if err := comments.Insert(ctx, &models.Comment{
		PostID:   intro.ID,
		AuthorID: milo.ID,
		Content:  "Smart boy! Milo just knocks things off shelves.",
	}); err != nil {
		return err
	}

	logger.Info("Seeded demo data",
		zap.Int("profiles", 3),
		zap.Int("posts", 4))
	return nil
}
