package repository

import (
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/database/mongoclient"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/listing"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type landTokenRepoImpl struct {
	q query.Mongo
}

func NewLandTokenRepo(q query.Mongo) listing.LandTokenRepo {
	return &landTokenRepoImpl{q}
}

func (im *landTokenRepoImpl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.ChainId != nil {
		query["chainId"] = *options.ChainId
	}

	if options.CollectionId != nil {
		query["collectionId"] = *options.CollectionId
	}

	if options.Active != nil {
		query["isListed"] = *options.Active
	}

	return query, nil
}

func (im *landTokenRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.LandToken, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := int32(0)
	limit := int32(0)
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}

	res := []*listing.LandToken{}
	err = im.q.Search(ctx, domain.TableLandTokens, int(offset), int(limit), "tokenId", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *landTokenRepoImpl) FindOne(ctx ctx.Ctx, id listing.LandTokenId) (*listing.LandToken, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := listing.LandToken{}
	err = im.q.FindOne(ctx, domain.TableLandTokens, qry, &res)
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

func (im *landTokenRepoImpl) Upsert(ctx ctx.Ctx, t *listing.LandToken) error {
	t.LowerCase()
	id := t.ToId()
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Upsert(ctx, domain.TableLandTokens, selector, t)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"token":    *t,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *landTokenRepoImpl) Patch(ctx ctx.Ctx, id listing.LandTokenId, patchable listing.LandTokenPatchable) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableLandTokens, selector, updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"updater":  updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
