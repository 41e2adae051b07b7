package bootstrap

import (
	"log"

	"github.com/raindropsacademy/tuition-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.TeacherProfile{},
		&model.Course{},
		&model.Enrollment{},
		&model.Payment{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleAdmin, Description: "Site administrator"},
		{Name: model.RoleTeacher, Description: "Course teacher"},
		{Name: model.RoleStudent, Description: "Enrolled student"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@raindropsacademy.com").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("Admin@1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Username:     "admin",
		Email:        "admin@raindropsacademy.com",
		PasswordHash: string(hashedPasswordBytes),
		FullName:     "Site Administrator",
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded (username: admin)")

	return nil
}

// SeedCourses loads the starter catalog on an empty database.
func SeedCourses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type seedCourse struct {
		name, description, duration string
		fee                         float64
		icon                        string
		features                    []string
	}

	seeds := []seedCourse{
		{
			name:        "Learning Quran",
			description: "Comprehensive Quran reading course for beginners. Learn proper pronunciation, basic rules, and reading fluency with experienced instructors.",
			duration:    "6 months",
			fee:         150.00,
			icon:        "https://images.unsplash.com/photo-1609599006353-e629aaabfeae?w=400&h=300&fit=crop",
			features:    []string{"One-on-one sessions", "Flexible scheduling", "Progress tracking", "Certificate upon completion"},
		},
		{
			name:        "Memorizing Quran",
			description: "Structured Hifz program with proven memorization techniques. Join thousands of students who have completed their Quran memorization with us.",
			duration:    "2-3 years",
			fee:         200.00,
			icon:        "https://images.unsplash.com/photo-1591604466107-ec97de577aff?w=400&h=300&fit=crop",
			features:    []string{"Daily revision classes", "Memory techniques", "Monthly assessments", "Ijazah certification"},
		},
		{
			name:        "Tajweed Mastery",
			description: "Master the art of Tajweed with expert teachers. Perfect your recitation and understand the beauty of Quranic pronunciation.",
			duration:    "4 months",
			fee:         120.00,
			icon:        "https://images.unsplash.com/photo-1542816417-0983c9c9ad53?w=400&h=300&fit=crop",
			features:    []string{"Advanced Tajweed rules", "Practical exercises", "Audio feedback", "Makharij training"},
		},
		{
			name:        "Islamic Studies",
			description: "Comprehensive Islamic education covering Fiqh, Hadith, Seerah, and Islamic history. Deepen your understanding of Islam.",
			duration:    "8 months",
			fee:         180.00,
			icon:        "https://images.unsplash.com/photo-1524995997946-a1c2e315a42f?w=400&h=300&fit=crop",
			features:    []string{"Expert scholars", "Interactive discussions", "Study materials", "Islamic library access"},
		},
	}

	for _, sc := range seeds {
		course := model.Course{
			Name:        sc.name,
			Description: sc.description,
			Duration:    sc.duration,
			TuitionFee:  sc.fee,
			IconURL:     sc.icon,
		}
		course.SetFeatures(sc.features)

		if err := db.Create(&course).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded starter course catalog")

	return nil
}
