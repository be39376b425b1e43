package config

import (
	"log"

	"p9e.in/homepro/models"
)

// SeedServiceCategories creates the default service category catalog.
// Categories are admin-managed; this only fills an empty install.
func SeedServiceCategories() {
	categories := []struct {
		Name        string
		Description string
	}{
		{Name: "Plumbing", Description: "Pipes, fixtures, drains and water heaters"},
		{Name: "Electrical", Description: "Wiring, panels, lighting and outlets"},
		{Name: "HVAC", Description: "Heating, ventilation and air conditioning"},
		{Name: "Roofing", Description: "Roof repair, replacement and inspection"},
		{Name: "Painting", Description: "Interior and exterior painting"},
		{Name: "Landscaping", Description: "Lawn care, gardens and outdoor spaces"},
		{Name: "Carpentry", Description: "Framing, trim, decks and custom woodwork"},
		{Name: "Cleaning", Description: "Home and move-out cleaning services"},
		{Name: "Flooring", Description: "Hardwood, tile, carpet and laminate"},
		{Name: "General Handyman", Description: "Small repairs and odd jobs"},
	}

	for _, categoryData := range categories {
		var existing models.ServiceCategory
		err := DB.Where("name = ?", categoryData.Name).First(&existing).Error
		if err != nil {
			description := categoryData.Description
			category := models.ServiceCategory{
				Name:        categoryData.Name,
				Description: &description,
			}
			if err := DB.Create(&category).Error; err != nil {
				log.Printf("Error creating service category %s: %v", categoryData.Name, err)
			} else {
				log.Printf("Created service category: %s", categoryData.Name)
			}
		}
	}
}
