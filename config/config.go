package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI        string
	DatabaseName    string
	Port            string
	JWTSecret       string
	GeminiAPIKey    string
	SendGridAPIKey  string
	AWSRegion       string
	S3Bucket        string
	WearDedupPolicy string
	Env             string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DatabaseName = os.Getenv("MONGO_DB")
	if DatabaseName == "" {
		DatabaseName = "wardrobe"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	JWTSecret = os.Getenv("JWT_SECRET")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "us-east-1"
	}
	S3Bucket = os.Getenv("S3_BUCKET")

	// "allow" records every wear action; "daily" refuses a second event
	// for the same garment on the same calendar day.
	WearDedupPolicy = os.Getenv("WEAR_DEDUP_POLICY")
	if WearDedupPolicy == "" {
		WearDedupPolicy = "allow"
	}

	Env = os.Getenv("ENV")
	if Env == "" {
		Env = "development"
	}
}

// IsProduction reports whether the server runs in production mode.
// Upstream error responses hide raw driver detail when true.
func IsProduction() bool {
	return Env == "production"
}
