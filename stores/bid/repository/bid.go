package repository

import (
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/database/mongoclient"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type bidRepoImpl struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) bid.Repo {
	return &bidRepoImpl{q}
}

func (im *bidRepoImpl) makeQuery(opts ...bid.FindAllOptionsFunc) (bson.M, error) {
	options, err := bid.GetFindAllOptions(opts...)
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

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	if options.Bidder != nil {
		query["bidder"] = *options.Bidder
	}

	if len(options.Statuses) > 0 {
		query["status"] = bson.M{"$in": options.Statuses}
	}

	return query, nil
}

func (im *bidRepoImpl) FindAll(ctx ctx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := bid.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := int32(0)
	limit := int32(0)
	sort := "-bidTime"
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*bid.Bid{}
	err = im.q.Search(ctx, domain.TableBids, int(offset), int(limit), sort, query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *bidRepoImpl) FindOne(ctx ctx.Ctx, id bid.Id) (*bid.Bid, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := bid.Bid{}
	err = im.q.FindOne(ctx, domain.TableBids, qry, &res)
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

func (im *bidRepoImpl) Count(ctx ctx.Ctx, opts ...bid.FindAllOptionsFunc) (int, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableBids, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *bidRepoImpl) Upsert(ctx ctx.Ctx, b *bid.Bid) error {
	b.LowerCase()
	id := b.ToId()
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Upsert(ctx, domain.TableBids, selector, b)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"bid":      *b,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *bidRepoImpl) Update(ctx ctx.Ctx, id bid.Id, patchable bid.Patchable) error {
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

	err = im.q.Patch(ctx, domain.TableBids, selector, updater)
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

func (im *bidRepoImpl) UpdateAll(ctx ctx.Ctx, patchable bid.Patchable, opts ...bid.FindAllOptionsFunc) error {
	selector, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
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

	err = im.q.Patch(ctx, domain.TableBids, selector, updater, query.WithPatchMany(true))
	if err == query.ErrNotFound {
		// nothing matched, treated as a no-op
		return nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"updater":  updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
