package main

import (
	"fmt"
	"log"

	"github.com/Barrelito/pannben-75/internal/config"
	"github.com/Barrelito/pannben-75/internal/db"
	"github.com/Barrelito/pannben-75/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// Creates a local test account with an empty challenge profile and
// seeds the default diet plans. Intended for development databases.
func main() {
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	if err := service.NewDietPlanService(db.DB).EnsureDefaults(); err != nil {
		log.Fatal("failed to seed diet plans: ", err)
	}

	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("users already exist, nothing to do")
		return
	}

	password := "pannben123"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	user := db.User{Username: "demo", Password: string(hashed)}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatal("failed to create user: ", err)
	}

	if _, err := service.NewProfileService(db.DB).Ensure(user.ID); err != nil {
		log.Fatal("failed to create challenge profile: ", err)
	}

	fmt.Println("demo user created")
	fmt.Println("username: demo")
	fmt.Println("password:", password)
}
