package repository

import (
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/user"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type userRepoImpl struct {
	q query.Mongo
}

func NewUserRepo(q query.Mongo) user.Repo {
	return &userRepoImpl{q}
}

func (im *userRepoImpl) FindOne(ctx ctx.Ctx, address domain.Address) (*user.User, error) {
	qry := bson.M{"address": address.ToLower()}

	res := user.User{}
	err := im.q.FindOne(ctx, domain.TableUsers, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *userRepoImpl) Upsert(ctx ctx.Ctx, u *user.User) error {
	u.LowerCase()
	selector := bson.M{"address": u.Address}

	err := im.q.Upsert(ctx, domain.TableUsers, selector, u)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"user":     *u,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
