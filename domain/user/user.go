package user

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
)

// User is a chain account known to the marketplace. Address is stored
// lowercased; it is the join key between stored bids/ownership and
// chain-reported addresses.
type User struct {
	Address   domain.Address `json:"address" bson:"address"`
	Username  string         `json:"username" bson:"username"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

func (u *User) LowerCase() {
	u.Address = u.Address.ToLower()
}

type Repo interface {
	// FindOne looks a user up by address (case-insensitive)
	FindOne(ctx ctx.Ctx, address domain.Address) (*User, error)
	Upsert(ctx ctx.Ctx, u *User) error
}
