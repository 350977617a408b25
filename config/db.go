package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lodging-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "lodging_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase fills an empty database with demo room types and add-ons so
// the console has something to show.
func SeedDatabase() {
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []struct {
			name     string
			price    int64
			guests   int
			priority int
			units    []string
		}{
			{"Standard", 450000, 2, 1, []string{"101", "102", "103", "104"}},
			{"Superior", 650000, 3, 2, []string{"201", "202", "203"}},
			{"Deluxe", 900000, 4, 3, []string{"301", "302"}},
		}
		for _, seed := range roomTypes {
			rt := models.RoomType{
				Name:        seed.name,
				NormalPrice: seed.price,
				MaxGuests:   seed.guests,
				Priority:    seed.priority,
			}
			if err := rt.SetUnitLabels(seed.units); err != nil {
				log.Printf("warning: failed to encode unit labels for %s: %v", seed.name, err)
				continue
			}
			if err := DB.Create(&rt).Error; err != nil {
				log.Printf("warning: failed to seed room type %s: %v", seed.name, err)
			}
		}
		log.Println("RoomTypes seeded")
	}

	var addOnCount int64
	DB.Model(&models.AddOn{}).Count(&addOnCount)
	if addOnCount == 0 {
		addOns := []models.AddOn{
			{Name: "Extra bed", Price: 150000, PricingMode: models.AddOnPerNight, MaxQuantity: 2, Active: true},
			{Name: "Breakfast", Price: 75000, PricingMode: models.AddOnPerPersonPerNight, MaxQuantity: 1, Active: true},
			{Name: "Airport pickup", Price: 250000, PricingMode: models.AddOnOnce, MaxQuantity: 1, Active: true},
		}
		if err := DB.Create(&addOns).Error; err != nil {
			log.Printf("warning: failed to seed add-ons: %v", err)
		} else {
			log.Println("AddOns seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.RoomType{},
		&models.AddOn{},
		&models.Booking{},
		&models.RoomAllocation{},
		&models.BookingAddOn{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
