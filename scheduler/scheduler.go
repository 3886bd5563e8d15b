package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"template_directory/config"
	"template_directory/logger"
	"template_directory/models"
	"template_directory/repository"
	"template_directory/services"
)

// 验证小时和分钟是否有效
func validateHourMinute(hour, minute int) (int, int) {
	if hour < 0 || hour > 23 {
		logger.Warn("无效的小时值，使用默认值", "hour", hour)
		hour = 4
	}
	if minute < 0 || minute > 59 {
		logger.Warn("无效的分钟值，使用默认值", "minute", minute)
		minute = 0
	}
	return hour, minute
}

// 计算下一个指定时间点
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// 任务类型
type TaskType int

const (
	TaskCacheSweep TaskType = iota // 清理过期的推荐缓存条目
	TaskCacheWarmup                // 预热热门模板的推荐结果
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// 任务调度器
type Scheduler struct {
	cfg    *config.Config
	repo   *repository.TemplateRepo
	engine *services.RelatedEngine
	tasks  map[TaskType]*TaskStatus
	mutex  sync.Mutex
}

// NewScheduler 创建调度器
func NewScheduler(cfg *config.Config, repo *repository.TemplateRepo, engine *services.RelatedEngine) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		repo:   repo,
		engine: engine,
		tasks:  make(map[TaskType]*TaskStatus),
	}
}

// Start 启动调度器
func Start(cfg *config.Config, repo *repository.TemplateRepo, engine *services.RelatedEngine) {
	s := NewScheduler(cfg, repo, engine)
	s.initTasks()
	go s.run()

	checkInterval := cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	logger.Info("调度器已启动", "check_interval_sec", checkInterval)
}

// 初始化任务
func (s *Scheduler) initTasks() {
	now := time.Now()

	// 缓存清理任务：按固定间隔运行
	sweepInterval := s.cfg.Scheduler.SweepIntervalMin
	if sweepInterval <= 0 {
		sweepInterval = 10
	}
	s.tasks[TaskCacheSweep] = &TaskStatus{
		LastRun:     now,
		NextRun:     now.Add(time.Duration(sweepInterval) * time.Minute),
		IsRunning:   false,
		Description: fmt.Sprintf("推荐缓存清理 (每%d分钟)", sweepInterval),
	}

	// 缓存预热任务：每天在指定时间点运行
	hour, minute := validateHourMinute(s.cfg.Scheduler.WarmupHour, s.cfg.Scheduler.WarmupMin)
	nextWarmup := getNextTimePoint(now, hour, minute)
	s.tasks[TaskCacheWarmup] = &TaskStatus{
		LastRun:     nextWarmup.Add(-24 * time.Hour),
		NextRun:     nextWarmup,
		IsRunning:   false,
		Description: fmt.Sprintf("热门模板推荐预热 (%02d:%02d)", hour, minute),
	}

	logger.Info("定时任务初始化完成", "task_count", len(s.tasks))
}

// 主循环
func (s *Scheduler) run() {
	checkInterval := s.cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	ticker := time.NewTicker(time.Duration(checkInterval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

// 检查任务
func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		// 如果任务正在运行，跳过
		if status.IsRunning {
			continue
		}

		// 如果到达或超过下次运行时间，执行任务
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

// 运行任务
func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		// 更新下次运行时间
		switch taskType {
		case TaskCacheSweep:
			sweepInterval := s.cfg.Scheduler.SweepIntervalMin
			if sweepInterval <= 0 {
				sweepInterval = 10
			}
			status.NextRun = now.Add(time.Duration(sweepInterval) * time.Minute)
		case TaskCacheWarmup:
			hour, minute := validateHourMinute(s.cfg.Scheduler.WarmupHour, s.cfg.Scheduler.WarmupMin)
			status.NextRun = getNextTimePoint(now, hour, minute)
		}
	}()

	switch taskType {
	case TaskCacheSweep:
		removed := s.engine.Cache().Sweep()
		logger.Info("推荐缓存清理完成", "removed", removed, "remaining", s.engine.Cache().Len())
	case TaskCacheWarmup:
		s.warmupRelated()
	}
}

// warmupRelated 为下载量最高的模板提前计算推荐结果
// 预热失败只影响首个访客的延迟，出错时记日志后继续
func (s *Scheduler) warmupRelated() {
	warmupCount := s.cfg.Scheduler.WarmupCount
	if warmupCount <= 0 {
		warmupCount = 20
	}

	ctx := context.Background()
	top, err := s.repo.TopDownloaded(ctx, warmupCount)
	if err != nil {
		logger.Error("预热取热门模板失败", "error", err)
		return
	}

	warmed := 0
	for _, t := range top {
		query := models.RelatedQuery{
			SourceID: t.ID,
			Category: t.Category,
			Tags:     t.Tags,
			Limit:    s.cfg.Related.DefaultLimit,
		}
		if _, err := s.engine.GetRelated(ctx, query); err != nil {
			logger.Warn("预热单个模板失败", "id", t.ID, "error", err)
			continue
		}
		warmed++
	}

	logger.Info("热门模板推荐预热完成", "requested", len(top), "warmed", warmed)
}
