// Command seed fills the configured NetGRO store with sample data.
package main

import (
	"context"
	"flag"
	"log"

	"netgro/internal/bootstrap"
	"netgro/internal/config"
	"netgro/internal/observability"
	"netgro/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of random users to create")
	postsPerUser := flag.Int("posts", 3, "Posts per random user")
	maxComments := flag.Int("comments", 4, "Maximum comments per post")
	maxLikes := flag.Int("likes", 8, "Maximum likes per post")
	randSeed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	dryRun := flag.Bool("dry-run", false, "Generate data without writing it")
	fixture := flag.Bool("fixture", true, "Load the bundled EduConnect dataset first")
	flag.Parse()

	log.Println("🌱 NetGRO Seeder")
	log.Println("================")
	log.Printf("Target: %d users x %d posts, fixture=%v, dry-run=%v\n", *numUsers, *postsPerUser, *fixture, *dryRun)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := observability.EnsureCorrelationID(context.Background())
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer rt.Close(ctx)

	if *fixture && !*dryRun {
		res, err := rt.SeedFixture(ctx)
		if err != nil {
			log.Fatalf("❌ Fixture seeding failed: %v", err)
		}
		log.Printf("Fixture: %d users, %d posts, %d comments, %d likes", res.Users, res.Posts, res.Comments, res.Likes)
	}

	factory := seed.NewFactory(seed.NewSeeder(rt.Users, rt.Posts, rt.Hasher), seed.Options{
		Users:        *numUsers,
		PostsPerUser: *postsPerUser,
		MaxComments:  *maxComments,
		MaxLikes:     *maxLikes,
		Seed:         *randSeed,
		DryRun:       *dryRun,
	})
	res, err := factory.Run(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		log.Fatalf("❌ Random seeding failed: %v", err)
	}
	log.Printf("Random: %d users, %d posts, %d comments, %d likes", res.Users, res.Posts, res.Comments, res.Likes)

	log.Println("✨ All done!")
	log.Printf("📧 All seeded users have the password: %s", seed.DefaultPassword)
}
