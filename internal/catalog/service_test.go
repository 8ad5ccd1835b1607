package catalog

import (
	"context"
	"errors"
	"testing"

	"stitchmart.org/internal/auth"
)

func user(id string, perms ...auth.Permission) *auth.User {
	if len(perms) == 0 {
		perms = []auth.Permission{auth.PermissionUser}
	}
	return &auth.User{ID: id, Email: id + "@example.com", Permissions: perms}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewMemoryItemStore(), NewMemoryOrderStore())
}

func TestCreateItemRequiresUser(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateItem(context.Background(), nil, &Item{Title: "Shirt", Price: 2500})
	if !errors.Is(err, auth.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestCreateItemRecordsOwner(t *testing.T) {
	svc := newTestService(t)
	item, err := svc.CreateItem(context.Background(), user("u1"), &Item{Title: "Shirt", Price: 2500})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.UserID != "u1" {
		t.Fatalf("owner = %q, want u1", item.UserID)
	}
	if item.ID == "" || item.CreatedAt.IsZero() {
		t.Fatalf("item not fully populated: %+v", item)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.CreateItem(ctx, user("u1"), &Item{Title: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank title: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.CreateItem(ctx, user("u1"), &Item{Title: "Shirt", Price: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative price: expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateItemGate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	item, err := svc.CreateItem(ctx, user("owner"), &Item{Title: "Shirt", Price: 2500})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	newTitle := "Jacket"
	if _, err := svc.UpdateItem(ctx, user("stranger"), item.ID, ItemPatch{Title: &newTitle}); !errors.Is(err, auth.ErrPermissionDenied) {
		t.Fatalf("stranger: expected ErrPermissionDenied, got %v", err)
	}

	updated, err := svc.UpdateItem(ctx, user("owner"), item.ID, ItemPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Jacket" || updated.Price != 2500 {
		t.Fatalf("unexpected item after patch: %+v", updated)
	}

	price := 3000
	byPermission, err := svc.UpdateItem(ctx, user("editor", auth.PermissionItemUpdate), item.ID, ItemPatch{Price: &price})
	if err != nil {
		t.Fatalf("ITEMUPDATE update: %v", err)
	}
	if byPermission.Price != 3000 {
		t.Fatalf("price = %d, want 3000", byPermission.Price)
	}
	// Ownership stays with the creator.
	if byPermission.UserID != "owner" {
		t.Fatalf("owner changed to %q", byPermission.UserID)
	}
}

func TestDeleteItemGate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	item, err := svc.CreateItem(ctx, user("owner"), &Item{Title: "Shirt", Price: 2500})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := svc.DeleteItem(ctx, user("stranger"), item.ID); !errors.Is(err, auth.ErrPermissionDenied) {
		t.Fatalf("stranger: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.Item(ctx, item.ID); err != nil {
		t.Fatalf("item must survive a denied delete: %v", err)
	}

	if err := svc.DeleteItem(ctx, user("janitor", auth.PermissionItemDelete), item.ID); err != nil {
		t.Fatalf("ITEMDELETE delete: %v", err)
	}
	if _, err := svc.Item(ctx, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
	}
}

func TestDeleteItemAnonymous(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	item, err := svc.CreateItem(ctx, user("owner"), &Item{Title: "Shirt", Price: 2500})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if err := svc.DeleteItem(ctx, nil, item.ID); !errors.Is(err, auth.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestOrderOwnerOrAdmin(t *testing.T) {
	items := NewMemoryItemStore()
	orders := NewMemoryOrderStore()
	svc := NewService(items, orders)
	ctx := context.Background()

	order := &Order{UserID: "buyer", Total: 5000, Charge: "ch_1"}
	if err := orders.Create(ctx, order); err != nil {
		t.Fatalf("Create order: %v", err)
	}

	if _, err := svc.Order(ctx, user("buyer"), order.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if _, err := svc.Order(ctx, user("root", auth.PermissionAdmin), order.ID); err != nil {
		t.Fatalf("admin lookup: %v", err)
	}
	if _, err := svc.Order(ctx, user("stranger"), order.ID); !errors.Is(err, auth.ErrPermissionDenied) {
		t.Fatalf("stranger lookup: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.Order(ctx, nil, order.ID); !errors.Is(err, auth.ErrAuthenticationRequired) {
		t.Fatalf("anonymous lookup: expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestOrdersListOwnOnly(t *testing.T) {
	orders := NewMemoryOrderStore()
	svc := NewService(NewMemoryItemStore(), orders)
	ctx := context.Background()

	if err := orders.Create(ctx, &Order{UserID: "buyer", Total: 100, Charge: "ch_1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := orders.Create(ctx, &Order{UserID: "other", Total: 200, Charge: "ch_2"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// ADMIN widens single lookup but not the listing.
	got, err := svc.Orders(ctx, user("buyer", auth.PermissionAdmin))
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	if len(got) != 1 || got[0].Charge != "ch_1" {
		t.Fatalf("unexpected orders: %+v", got)
	}
}
