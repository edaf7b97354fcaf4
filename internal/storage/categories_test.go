package storage

import (
	"errors"
	"testing"

	"github.com/conorfennell/flashdeck/internal/domain"
)

func TestInsertCategory(t *testing.T) {
	db := openTestDB(t)

	t.Run("round trip", func(t *testing.T) {
		created, err := db.InsertCategory(NewCategory{Name: "Biology", Description: "Life science"})
		if err != nil {
			t.Fatalf("InsertCategory() returned an unexpected error: %v", err)
		}
		if created.ID == 0 {
			t.Error("Expected a nonzero id to be assigned")
		}
		if created.CreatedAt.IsZero() {
			t.Error("Expected createdAt to be assigned")
		}

		found, err := db.FindCategoryByID(created.ID)
		if err != nil {
			t.Fatalf("FindCategoryByID() returned an unexpected error: %v", err)
		}
		if found == nil {
			t.Fatal("Expected to find the created category")
		}
		if found.Name != "Biology" || found.Description != "Life science" {
			t.Errorf("Round trip mismatch: got name %q description %q", found.Name, found.Description)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := db.InsertCategory(NewCategory{Name: "   "})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Expected a validation error for blank name, got %v", err)
		}
	})
}

func TestFindCategoryByIDMissing(t *testing.T) {
	db := openTestDB(t)
	found, err := db.FindCategoryByID(12345)
	if err != nil {
		t.Fatalf("FindCategoryByID() returned an unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("Expected nil for a missing category, got %+v", found)
	}
}

func TestCategoryChildViews(t *testing.T) {
	db := openTestDB(t)
	category := mustCategory(t, db, "Chemistry")
	sub := mustSubcategory(t, db, category.ID, "Organic")
	mustCard(t, db, category.ID, nil, "Atom")
	mustCard(t, db, category.ID, &sub.ID, "Benzene")

	found, err := db.FindCategoryByID(category.ID)
	if err != nil {
		t.Fatalf("FindCategoryByID() returned an unexpected error: %v", err)
	}
	if len(found.Subcategories) != 1 {
		t.Fatalf("Expected 1 subcategory, got %d", len(found.Subcategories))
	}
	if len(found.Cards) != 2 {
		t.Errorf("Expected 2 cards on the category (direct and via subcategory), got %d", len(found.Cards))
	}
	if len(found.Subcategories[0].Cards) != 1 {
		t.Errorf("Expected 1 card on the subcategory, got %d", len(found.Subcategories[0].Cards))
	}
}

func TestUpdateCategory(t *testing.T) {
	db := openTestDB(t)
	category := mustCategory(t, db, "Geography")

	if err := db.UpdateCategory(category.ID, "Geology", "Rocks"); err != nil {
		t.Fatalf("UpdateCategory() returned an unexpected error: %v", err)
	}
	found, err := db.FindCategoryByID(category.ID)
	if err != nil {
		t.Fatalf("FindCategoryByID() returned an unexpected error: %v", err)
	}
	if found.Name != "Geology" || found.Description != "Rocks" {
		t.Errorf("Expected updated fields, got name %q description %q", found.Name, found.Description)
	}
	if !found.CreatedAt.Equal(category.CreatedAt) {
		t.Errorf("Expected createdAt to be untouched by update")
	}

	t.Run("missing id is a no-op", func(t *testing.T) {
		if err := db.UpdateCategory(99999, "Ghost", ""); err != nil {
			t.Errorf("Expected updating a missing id to be a no-op, got %v", err)
		}
	})
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := openTestDB(t)
	category := mustCategory(t, db, "Physics")
	other := mustCategory(t, db, "Untouched")
	sub := mustSubcategory(t, db, category.ID, "Mechanics")
	direct := mustCard(t, db, category.ID, nil, "Photon")
	nested := mustCard(t, db, category.ID, &sub.ID, "Newton")
	keeper := mustCard(t, db, other.ID, nil, "Keeper")

	reviewedAt := direct.CreatedAt
	if _, err := db.InsertReviewSession(NewReviewSession{
		CategoryID: &category.ID,
		ReviewType: domain.ReviewStandard,
		Right:      []int64{direct.ID},
		Wrong:      []int64{nested.ID},
		ReviewedAt: &reviewedAt,
	}); err != nil {
		t.Fatalf("InsertReviewSession() returned an unexpected error: %v", err)
	}

	if err := db.DeleteCategory(category.ID); err != nil {
		t.Fatalf("DeleteCategory() returned an unexpected error: %v", err)
	}

	if found, _ := db.FindCategoryByID(category.ID); found != nil {
		t.Error("Expected the category to be gone")
	}
	if found, _ := db.FindSubcategoryByID(sub.ID); found != nil {
		t.Error("Expected the subcategory to be cascade deleted")
	}
	for _, id := range []int64{direct.ID, nested.ID} {
		if found, _ := db.FindCardByID(id); found != nil {
			t.Errorf("Expected card %d to be cascade deleted", id)
		}
	}
	sessions, err := db.GetReviewSessionsByCategory(category.ID)
	if err != nil {
		t.Fatalf("GetReviewSessionsByCategory() returned an unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected the category's sessions to be cascade deleted, got %d", len(sessions))
	}

	if found, _ := db.FindCardByID(keeper.ID); found == nil {
		t.Error("Expected cards in other categories to survive the cascade")
	}
}

func TestDeleteCategoryIdempotent(t *testing.T) {
	db := openTestDB(t)
	category := mustCategory(t, db, "Short lived")

	if err := db.DeleteCategory(category.ID); err != nil {
		t.Fatalf("First delete returned an unexpected error: %v", err)
	}
	if err := db.DeleteCategory(category.ID); err != nil {
		t.Errorf("Second delete of the same id should not error, got %v", err)
	}
	if err := db.DeleteCategory(424242); err != nil {
		t.Errorf("Deleting a nonexistent id should not error, got %v", err)
	}
}

func TestGetAllCategoriesOrder(t *testing.T) {
	db := openTestDB(t)
	first := mustCategory(t, db, "First")
	second := mustCategory(t, db, "Second")

	categories, err := db.GetAllCategories()
	if err != nil {
		t.Fatalf("GetAllCategories() returned an unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(categories))
	}
	if categories[0].ID != first.ID || categories[1].ID != second.ID {
		t.Errorf("Expected creation order, got %d then %d", categories[0].ID, categories[1].ID)
	}
}
