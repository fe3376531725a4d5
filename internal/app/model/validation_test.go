package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(r ValidationResult) []string {
	names := make([]string, 0, len(r.Errors))
	for _, fe := range r.Errors {
		names = append(names, fe.Field)
	}
	return names
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name       string
		product    Product
		wantFields []string
	}{
		{
			name:    "Valid",
			product: Product{Name: "Classic Tote Bag", Description: "Canvas tote", Price: 120, Stock: 3},
		},
		{
			name:       "Missing name and description",
			product:    Product{Price: 10},
			wantFields: []string{"name", "description"},
		},
		{
			name:       "Negative price and stock",
			product:    Product{Name: "Belt", Description: "Leather", Price: -1, Stock: -2},
			wantFields: []string{"price", "stock"},
		},
		{
			name:    "Zero price is allowed",
			product: Product{Name: "Sticker", Description: "Free", Price: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.product.Validate()
			if len(tt.wantFields) == 0 {
				assert.True(t, result.OK(), result.Error())
				return
			}
			assert.False(t, result.OK())
			assert.ElementsMatch(t, tt.wantFields, fieldNames(result))
		})
	}
}

func TestProduct_Normalize(t *testing.T) {
	p := Product{Name: "  Wallet ", Category: "   "}
	p.Normalize()

	assert.Equal(t, "Wallet", p.Name)
	assert.Equal(t, DefaultCategory, p.Category)
}

func TestUser_Validate(t *testing.T) {
	valid := User{Username: "a", Email: "a@x.com"}
	assert.True(t, valid.Validate().OK())

	invalid := User{Username: "", Email: "not-an-email"}
	result := invalid.Validate()
	require.False(t, result.OK())
	assert.ElementsMatch(t, []string{"username", "email"}, fieldNames(result))

	badRole := User{Username: "a", Email: "a@x.com", Role: "owner"}
	assert.Equal(t, []string{"role"}, fieldNames(badRole.Validate()))
}

func TestPost_Validate(t *testing.T) {
	post := Post{UserID: 1, Content: "   "}
	post.Normalize()
	result := post.Validate()
	require.False(t, result.OK())
	assert.Equal(t, "content", result.Errors[0].Field)
	assert.Equal(t, "content is required", result.Errors[0].Message)

	long := Post{UserID: 1, Title: strings.Repeat("t", 201), Content: strings.Repeat("c", 5001)}
	result = long.Validate()
	assert.ElementsMatch(t, []string{"title", "content"}, fieldNames(result))
	assert.Contains(t, result.Error(), "title cannot be more than 200 characters")

	ok := Post{UserID: 1, Title: strings.Repeat("t", 200), Content: strings.Repeat("c", 5000)}
	assert.True(t, ok.Validate().OK())
}

func TestCartItem_Validate(t *testing.T) {
	assert.True(t, (&CartItem{Quantity: 1}).Validate().OK())
	assert.Equal(t, []string{"quantity"}, fieldNames((&CartItem{Quantity: 0}).Validate()))
}

func TestComment_Validate(t *testing.T) {
	c := Comment{UserID: 1, PostID: 0, Text: " "}
	c.Normalize()
	assert.ElementsMatch(t, []string{"post", "text"}, fieldNames(c.Validate()))
}

func TestCart_TotalAndDropMissingProducts(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: 1, Quantity: 2, Product: Product{ID: 1, Price: 0.1}},
		{ProductID: 2, Quantity: 3, Product: Product{ID: 2, Price: 0.2}},
		{ProductID: 3, Quantity: 1},
	}}

	cart.DropMissingProducts()
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 0.8, ToAmount(cart.Total()))
}

func TestPost_View(t *testing.T) {
	post := Post{
		ID:      5,
		Content: "hello",
		User:    User{ID: 1, Username: "alice", Email: "alice@example.com"},
		Likes:   []PostLike{{UserID: 2}, {UserID: 3}},
		Comments: []Comment{
			{ID: 9, PostID: 5, Text: "nice", User: User{ID: 2, Username: "bob"}},
		},
	}

	view := post.View()
	assert.Equal(t, UserSummary{ID: 1, Username: "alice"}, view.User)
	assert.Equal(t, []uint{2, 3}, view.Likes)
	assert.Equal(t, 2, view.LikesCount)
	assert.Equal(t, 1, view.CommentsCount)
	assert.Equal(t, "bob", view.Comments[0].User.Username)
	assert.Equal(t, uint(5), view.Comments[0].Post)
}
