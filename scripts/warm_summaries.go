// 手动预热目标汇总缓存
//
// 服务在每次写入后会清除对应目标的缓存，正常运行时无需执行。
// 此脚本用于 Redis 重启或周期切换后批量重建某个周期的汇总。
//
// 用法: go run scripts/warm_summaries.go -cycle 3

package main

import (
	"context"
	"flag"
	"log"
	"okr_backend/internal/config"
	"okr_backend/internal/model"
	"okr_backend/internal/repository"
	"okr_backend/internal/service"
	"okr_backend/pkg/database"
	"okr_backend/pkg/logger"
	"time"
)

func main() {
	cycleID := flag.Uint("cycle", 0, "要预热的周期 ID")
	flag.Parse()

	if *cycleID == 0 {
		log.Fatal("必须指定 -cycle")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Redis 连接失败: %v", err)
	}
	defer rdb.Close()

	objectiveRepo := repository.NewObjectiveRepository(db)
	objectives := service.NewObjectiveService(
		objectiveRepo,
		repository.NewKeyResultRepository(db),
		repository.NewCycleRepository(db),
		service.NewProgressService(cfg.Progress.Policy(), time.Now),
		service.NewRedisResultCache(rdb),
		cfg.Progress.CacheTTL(),
	)

	list, err := objectiveRepo.FindByCycleID(uint(*cycleID))
	if err != nil {
		log.Fatalf("查询目标失败: %v", err)
	}

	admin := service.Actor{Role: model.Admin}
	ctx := context.Background()
	warmed := 0
	for _, o := range list {
		objectives.Invalidate(ctx, o.ID)
		if _, err := objectives.Summary(ctx, admin, o.ID); err != nil {
			log.Printf("目标 %d 汇总失败: %v", o.ID, err)
			continue
		}
		warmed++
	}

	log.Printf("完成！已预热 %d/%d 个目标", warmed, len(list))
}
