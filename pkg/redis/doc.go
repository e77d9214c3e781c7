// Package redis connects zenith applications to Redis through
// [github.com/redis/go-redis/v9].
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//
//	app := zenith.New(
//		zenith.WithHealthChecks(zenith.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	err = app.Run(":8080", zenith.ShutdownHook(redis.Shutdown(client)))
//
// Settings come from REDIS_* environment variables, see [Config].
package redis
