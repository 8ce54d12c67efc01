package main

import (
	"fmt"
	"log"
	"time"

	"github.com/tatblog/internal/config"
	"github.com/tatblog/internal/db"
)

// 测试数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	authors := createAuthors()
	categories := createCategories()
	tags := createTags()
	createPosts(authors, categories, tags)

	fmt.Println("测试数据生成完成！")
}

func createAuthors() []db.Author {
	var count int64
	db.DB.Model(&db.Author{}).Count(&count)
	if count > 0 {
		fmt.Println("作者已存在，跳过创建")
		var existing []db.Author
		db.DB.Find(&existing)
		return existing
	}

	authors := []db.Author{
		{
			FullName:   "Jason Mouth",
			URLSlug:    "jason-mouth",
			Email:      "jason@gmail.com",
			JoinedDate: time.Date(2022, 10, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			FullName:   "Jessica Wonder",
			URLSlug:    "jessica-wonder",
			Email:      "jessica665@motip.com",
			JoinedDate: time.Date(2020, 4, 19, 0, 0, 0, 0, time.UTC),
		},
	}
	if err := db.DB.Create(&authors).Error; err != nil {
		log.Fatal("创建作者失败:", err)
	}
	return authors
}

func createCategories() []db.Category {
	var count int64
	db.DB.Model(&db.Category{}).Count(&count)
	if count > 0 {
		fmt.Println("栏目已存在，跳过创建")
		var existing []db.Category
		db.DB.Find(&existing)
		return existing
	}

	categories := []db.Category{
		{Name: ".NET Core", URLSlug: "dotnet-core", ShowOnMenu: true},
		{Name: "Architecture", URLSlug: "architecture", ShowOnMenu: true},
		{Name: "Messaging", URLSlug: "messaging", ShowOnMenu: true},
		{Name: "OOP", URLSlug: "object-oriented-programming"},
		{Name: "Design Patterns", URLSlug: "design-patterns", ShowOnMenu: true},
	}
	if err := db.DB.Create(&categories).Error; err != nil {
		log.Fatal("创建栏目失败:", err)
	}
	return categories
}

func createTags() []db.Tag {
	var count int64
	db.DB.Model(&db.Tag{}).Count(&count)
	if count > 0 {
		fmt.Println("标签已存在，跳过创建")
		var existing []db.Tag
		db.DB.Find(&existing)
		return existing
	}

	tags := []db.Tag{
		{Name: "Google", URLSlug: "google"},
		{Name: "ASP.NET MVC", URLSlug: "aspnet-mvc"},
		{Name: "Razor Page", URLSlug: "razor-page"},
		{Name: "Blazor", URLSlug: "blazor"},
		{Name: "Deep Learning", URLSlug: "deep-learning"},
		{Name: "Neural Network", URLSlug: "neural-network"},
	}
	if err := db.DB.Create(&tags).Error; err != nil {
		log.Fatal("创建标签失败:", err)
	}
	return tags
}

func createPosts(authors []db.Author, categories []db.Category, tags []db.Tag) {
	var count int64
	db.DB.Model(&db.Post{}).Count(&count)
	if count > 0 {
		fmt.Println("文章已存在，跳过创建")
		return
	}

	posts := []db.Post{
		{
			Title:            "ASP.NET Core Diagnostic Scenarios",
			ShortDescription: "David and friends have a great repository filled with examples of broken patterns in ASP.NET Core applications.",
			Description:      "# Diagnostic scenarios\n\nHere's a few great DON'T and DO examples to check out.",
			Meta:             "David and friends have a great repository filled",
			URLSlug:          "aspnet-core-diagnostic-scenarios",
			Published:        true,
			PostedDate:       time.Date(2021, 9, 30, 10, 20, 0, 0, time.UTC),
			ViewCount:        10,
			Author:           authors[0],
			Category:         categories[0],
			Tags:             []db.Tag{tags[0]},
		},
		{
			Title:            "Building event-driven microservices",
			ShortDescription: "An introduction to designing services around a message broker.",
			Description:      "# Event-driven services\n\nQueues decouple producers from consumers.",
			Meta:             "An introduction to event-driven microservices",
			URLSlug:          "building-event-driven-microservices",
			Published:        true,
			PostedDate:       time.Date(2022, 2, 11, 9, 0, 0, 0, time.UTC),
			ViewCount:        25,
			Author:           authors[1],
			Category:         categories[2],
			Tags:             []db.Tag{tags[1], tags[2]},
		},
		{
			Title:            "Understanding neural networks",
			ShortDescription: "A practical walk through the building blocks of a neural network.",
			Description:      "# Neural networks\n\nLayers, weights and activation functions.",
			Meta:             "A practical walk through neural networks",
			URLSlug:          "understanding-neural-networks",
			Published:        false,
			PostedDate:       time.Date(2023, 5, 3, 14, 30, 0, 0, time.UTC),
			Author:           authors[0],
			Category:         categories[1],
			Tags:             []db.Tag{tags[4], tags[5]},
		},
	}
	if err := db.DB.Create(&posts).Error; err != nil {
		log.Fatal("创建文章失败:", err)
	}
	fmt.Printf("文章: %d 篇\n", len(posts))
}
