package task

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/utils"
)

// CleanUpLogs 删除超过保留天数的日志文件
func (m *Manager) CleanUpLogs() error {
	retentionDays := global.Config().LogRetentionDays
	if retentionDays == 0 {
		global.Log.Info("日志清理功能已禁用 (log_retention_days = 0)")
		return nil
	}

	// gin_log_path 与 run_log_path 可能不在同一目录
	dirs := []string{filepath.Dir(global.Config().RunLogPath)}
	if d := filepath.Dir(global.Config().GinLogPath); global.Config().GinLogPath != "" && d != dirs[0] {
		dirs = append(dirs, d)
	}

	total := 0
	for _, dir := range dirs {
		n, err := cleanUpLogDir(dir, retentionDays, time.Now().In(global.Tz), global.Tz)
		total += n
		if err != nil {
			return err
		}
	}
	global.Log.Infof("日志清理任务完成, 共删除 %d 个文件", total)
	return nil
}

// cleanUpLogDir 文件名形如 run.log.2025-10-28, 日期早于 today-retentionDays 的被删除
func cleanUpLogDir(logDir string, retentionDays uint, now time.Time, loc *time.Location) (int, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	cutoffDate := today.AddDate(0, 0, -int(retentionDays))

	deletedCount := 0
	var errs []string

	err := filepath.WalkDir(logDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		fileDate, ok := utils.ParseDateFromLogFileName(d.Name(), loc)
		if !ok || !fileDate.Before(cutoffDate) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Sprintf("删除旧日志文件 %s 失败: %v", path, err))
			return nil
		}
		deletedCount++
		return nil
	})

	if err != nil {
		return deletedCount, fmt.Errorf("遍历日志目录 '%s' 失败[e4vx0p]: %w", logDir, err)
	}
	if len(errs) > 0 {
		return deletedCount, fmt.Errorf("日志清理过程中发生错误: %s", strings.Join(errs, "; "))
	}
	return deletedCount, nil
}
