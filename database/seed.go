package database

import (
	"log"

	"kds_manager/constants"
	"kds_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	accounts := []model.Account{
		{Username: "admin", Password: hashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}
	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	menuItems := []model.MenuItem{
		{Name: "Smash Burger", Category: "Mains", Station: constants.STATION_KITCHEN, CookSeconds: 600, PriceCents: 1450,
			Modifiers: []model.Modifier{
				{GroupName: "Temperature", Name: "Medium"},
				{GroupName: "Temperature", Name: "Well Done"},
				{GroupName: "Sauce", Name: "House Aioli", PriceDeltaCents: 50},
			}},
		{Name: "Buffalo Wings", Category: "Shareables", Station: constants.STATION_KITCHEN, CookSeconds: 840, PriceCents: 1250,
			Modifiers: []model.Modifier{
				{GroupName: "Sauce", Name: "Buffalo"},
				{GroupName: "Sauce", Name: "BBQ"},
			}},
		{Name: "Truffle Fries", Category: "Shareables", Station: constants.STATION_KITCHEN, CookSeconds: 300, PriceCents: 850},
		{Name: "Margherita Flatbread", Category: "Mains", Station: constants.STATION_KITCHEN, CookSeconds: 720, PriceCents: 1300},
		{Name: "House Lager", Category: "Beer", Station: constants.STATION_BAR, CookSeconds: 60, PriceCents: 700},
		{Name: "Frozen Margarita", Category: "Cocktails", Station: constants.STATION_BAR, CookSeconds: 180, PriceCents: 1100,
			Modifiers: []model.Modifier{
				{GroupName: "Flavor", Name: "Lime"},
				{GroupName: "Flavor", Name: "Strawberry", PriceDeltaCents: 100},
			}},
		{Name: "Espresso Martini", Category: "Cocktails", Station: constants.STATION_BAR, CookSeconds: 240, PriceCents: 1400},
	}
	for _, item := range menuItems {
		item.Slug = slug.Make(item.Name)
		if err := db.Where(model.MenuItem{Slug: item.Slug}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed menu item:", item.Name, "error:", err)
		}
	}
}
