package cache

import (
	"encoding/json"
	"reflect"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/service/cache/provider"
)

type impl struct {
	cfg ServiceConfig
}

func New(config ServiceConfig) Service {
	if config.Serialize == nil {
		config.Serialize = json.Marshal
	}

	if config.Deserialize == nil {
		config.Deserialize = json.Unmarshal
	}

	return &impl{cfg: config}
}

func (im *impl) key(key string) string {
	if im.cfg.Pfx == "" {
		return key
	}
	return im.cfg.Pfx + ":" + key
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err != nil && err != ErrNotFound {
		c.WithField("err", err).WithField("key", key).Error("Get failed")
		return err
	} else if err == nil {
		// hit cache, early return
		return nil
	}

	// no cache, get and fill cache
	val, err := getter()
	if err != nil {
		return err
	}

	if err := im.Set(c, key, val); err != nil {
		c.WithField("err", err).WithField("key", key).Error("Set failed")
	}

	reflect.ValueOf(container).Elem().Set(reflect.ValueOf(val).Elem())

	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	val, _, err := im.cfg.Cache.Get(c, im.key(key))
	if err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	return im.cfg.Deserialize(val, container)
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	data, err := im.cfg.Serialize(value)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("serialize failed")
		return err
	}

	return im.cfg.Cache.Set(c, im.key(key), data, im.cfg.Ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	return im.cfg.Cache.Del(c, im.key(key))
}
