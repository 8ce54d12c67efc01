package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tatblog/internal/db"
)

func TestGetTagItemsCountsPublishedPostsOnly(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	author := seedAuthor(t, gdb, "Jason Mouth", "jason-mouth")
	category := seedCategory(t, gdb, "OOP", "oop", false)

	golang := seedTag(t, gdb, "Go", "go")
	docker := seedTag(t, gdb, "Docker", "docker")

	published := seedPost(t, gdb, db.Post{
		Title: "Published", URLSlug: "published", Published: true,
		AuthorID: author.ID, CategoryID: category.ID,
	})
	draft := seedPost(t, gdb, db.Post{
		Title: "Draft", URLSlug: "draft", Published: false,
		AuthorID: author.ID, CategoryID: category.ID,
	})

	if err := gdb.Model(&published).Association("Tags").Append(&golang, &docker); err != nil {
		t.Fatalf("associate tags: %v", err)
	}
	if err := gdb.Model(&draft).Association("Tags").Append(&golang); err != nil {
		t.Fatalf("associate tags: %v", err)
	}

	svc := NewTagService(gdb)
	items, err := svc.GetTagItems(context.Background())
	if err != nil {
		t.Fatalf("tag items: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(items))
	}
	// name ascending: Docker, Go
	if items[0].Name != "Docker" || items[0].PostCount != 1 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Name != "Go" || items[1].PostCount != 1 {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestGetPagedTagsPagination(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 7; i++ {
		seedTag(t, gdb, fmt.Sprintf("Tag %02d", i), fmt.Sprintf("tag-%02d", i))
	}

	svc := NewTagService(gdb)

	seen := make(map[uint]bool)
	page := 1
	for {
		result, err := svc.GetPagedTags(context.Background(), PagingParams{
			PageNumber: page,
			PageSize:   3,
			SortColumn: "name",
			SortOrder:  SortAscending,
		})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if result.TotalCount != 7 || result.TotalPages != 3 {
			t.Fatalf("page %d: unexpected totals %d/%d", page, result.TotalCount, result.TotalPages)
		}
		if len(result.Items) > 3 {
			t.Fatalf("page %d: %d items exceed page size", page, len(result.Items))
		}

		for _, item := range result.Items {
			if seen[item.ID] {
				t.Fatalf("tag %d appeared on more than one page", item.ID)
			}
			seen[item.ID] = true
		}

		if page >= result.TotalPages {
			break
		}
		page++
	}

	if len(seen) != 7 {
		t.Fatalf("expected all 7 tags across pages, got %d", len(seen))
	}
}

func TestGetPagedTagsSortByPostCount(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	author := seedAuthor(t, gdb, "Jason Mouth", "jason-mouth")
	category := seedCategory(t, gdb, "OOP", "oop", false)

	quiet := seedTag(t, gdb, "Quiet", "quiet")
	busy := seedTag(t, gdb, "Busy", "busy")

	for i := 0; i < 2; i++ {
		post := seedPost(t, gdb, db.Post{
			Title: fmt.Sprintf("Busy %d", i), URLSlug: fmt.Sprintf("busy-%d", i), Published: true,
			AuthorID: author.ID, CategoryID: category.ID,
		})
		if err := gdb.Model(&post).Association("Tags").Append(&busy); err != nil {
			t.Fatalf("associate tag: %v", err)
		}
	}

	svc := NewTagService(gdb)
	result, err := svc.GetPagedTags(context.Background(), PagingParams{
		PageNumber: 1,
		PageSize:   10,
		SortColumn: "post_count",
		SortOrder:  SortDescending,
	})
	if err != nil {
		t.Fatalf("paged tags: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(result.Items))
	}
	if result.Items[0].ID != busy.ID || result.Items[0].PostCount != 2 {
		t.Fatalf("expected busy tag first, got %+v", result.Items[0])
	}
	if result.Items[1].ID != quiet.ID || result.Items[1].PostCount != 0 {
		t.Fatalf("expected quiet tag last, got %+v", result.Items[1])
	}
}

func TestGetPagedTagsRejectsUnknownSortColumn(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewTagService(gdb)
	_, err := svc.GetPagedTags(context.Background(), PagingParams{
		PageNumber: 1, PageSize: 10, SortColumn: "secret",
	})
	if !errors.Is(err, ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}
}

func TestGetTagBySlug(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	seedTag(t, gdb, "Go", "go")

	svc := NewTagService(gdb)
	tag, err := svc.GetTagBySlug(context.Background(), "go")
	if err != nil {
		t.Fatalf("get tag: %v", err)
	}
	if tag == nil || tag.Name != "Go" {
		t.Fatalf("unexpected tag: %+v", tag)
	}

	missing, err := svc.GetTagBySlug(context.Background(), "rust")
	if err != nil {
		t.Fatalf("get missing tag: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing slug, got %+v", missing)
	}
}

func TestDeleteTagWithIDCascadesAssociations(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	author := seedAuthor(t, gdb, "Jason Mouth", "jason-mouth")
	category := seedCategory(t, gdb, "OOP", "oop", false)

	doomed := seedTag(t, gdb, "Doomed", "doomed")
	kept := seedTag(t, gdb, "Kept", "kept")

	post := seedPost(t, gdb, db.Post{
		Title: "Tagged", URLSlug: "tagged", Published: true,
		AuthorID: author.ID, CategoryID: category.ID,
	})
	if err := gdb.Model(&post).Association("Tags").Append(&doomed, &kept); err != nil {
		t.Fatalf("associate tags: %v", err)
	}

	svc := NewTagService(gdb)
	if err := svc.DeleteTagWithID(context.Background(), doomed.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	// 标签本身已不存在
	gone, err := svc.GetTagBySlug(context.Background(), "doomed")
	if err != nil {
		t.Fatalf("lookup deleted tag: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected deleted tag to be gone, got %+v", gone)
	}

	// 文章仍在，且只保留未删除的标签
	var reloaded db.Post
	if err := gdb.Preload("Tags").First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if len(reloaded.Tags) != 1 || reloaded.Tags[0].ID != kept.ID {
		t.Fatalf("expected only kept tag, got %+v", reloaded.Tags)
	}

	// 关联表中不残留指向已删除标签的行
	var orphans int64
	if err := gdb.Table("post_tags").Where("tag_id = ?", doomed.ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected no orphaned associations, got %d", orphans)
	}
}

func TestDeleteTagWithIDMissingTag(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewTagService(gdb)
	if err := svc.DeleteTagWithID(context.Background(), 404); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}
