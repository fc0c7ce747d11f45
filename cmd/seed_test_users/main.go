package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/pageza/bangladiet/backend/config"
	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/database"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/repository"
	"github.com/pageza/bangladiet/backend/internal/service"
)

const password = "testpassword123"

type testUser struct {
	input service.RegisterInput
	meals []string
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store := repository.NewStore(db)
	calendar := service.NewCalendar(service.SystemClock(), cfg.Location())
	aggregator := service.NewDailyAggregator(store, calendar)
	// Seeded users always get formula targets so seeding needs no LLM key.
	auth := service.NewAuthService(store.Users, service.NewTargetEstimator(nil), nil, cfg.JWTSecret, time.Hour)
	meals := service.NewMealService(store, aggregator, calendar)

	testUsers := []testUser{
		{
			input: service.RegisterInput{Name: "Nadia Rahman", Email: "nadia@example.com", Age: 25, HeightCm: 160, WeightKg: 55, Gender: "female", Timezone: "Asia/Dhaka"},
			meals: []string{"porota", "Biriyani"},
		},
		{
			input: service.RegisterInput{Name: "Karim Hossain", Email: "karim@example.com", Age: 30, HeightCm: 170, WeightKg: 70, Gender: "male", Timezone: "Asia/Dhaka"},
			meals: []string{"Khichuri", "Fried_fish_Mach_Bhaja", "Misti"},
		},
		{
			input: service.RegisterInput{Name: "Rina Das", Email: "rina@example.com", Age: 52, HeightCm: 155, WeightKg: 68, Gender: "female", MedicalCondition: "Type 2 diabetes"},
		},
	}

	log.Println("Creating test users...")

	for _, tu := range testUsers {
		tu.input.Password = password
		user, _, err := auth.Register(ctx, tu.input)
		if errors.Is(err, apperrors.ErrEmailTaken) {
			log.Printf("User %s already exists, skipping...", tu.input.Email)
			continue
		}
		if err != nil {
			log.Printf("Failed to create user %s: %v", tu.input.Email, err)
			continue
		}

		var totals *models.DailyNutritionTotal
		for _, food := range tu.meals {
			macros, _ := nutrition.Lookup(food)
			_, totals, err = meals.LogMeal(ctx, user, service.LogMealInput{
				FoodName:       food,
				Macros:         macros,
				Recommendation: "moderate",
				Summary:        "Seeded meal",
			})
			if err != nil {
				log.Printf("Failed to log %s for %s: %v", food, user.Email, err)
			}
		}

		targets := user.Targets()
		log.Printf("✅ Created %s (%s): %.0f kcal/day, BMI %.1f", user.Name, user.Email, targets.DailyCalories, targets.BMI)
		if totals != nil {
			log.Printf("   %d meals logged for %s, %.0f kcal so far", totals.MealsCount, totals.Date, totals.TotalCalories)
		}
	}

	log.Println("\n🔑 Test Credentials:")
	log.Println("Email: Any of the above emails")
	log.Printf("Password: %s", password)
}
