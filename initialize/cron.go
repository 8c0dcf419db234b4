package initialize

import (
	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/task"
	"github.com/robfig/cron/v3"
)

func (i *Initializer) timerStart(taskManager *task.Manager) error {
	i.cron = cron.New([]cron.Option{
		cron.WithLocation(global.Tz),
	}...)

	if err := i.startCronJob("clean_logs", taskManager.CleanUpLogs, "0 3 * * *"); err != nil {
		return err
	}
	if err := i.startCronJob("probe_model", taskManager.ProbeModel, "*/5 * * * *"); err != nil {
		return err
	}

	i.cron.Start() //已含协程
	global.Log.Infoln("定时器启动成功")
	return nil
}

func (i *Initializer) timerStop() {
	if i.cron == nil {
		return
	}
	<-i.cron.Stop().Done()
	global.Log.Infoln("定时器停止成功")
}

// 启动一个新的定时任务, 失败只记录日志
func (i *Initializer) startCronJob(name string, task func() error, schedule string) error {
	_, err := i.cron.AddFunc(schedule, func() {
		if err := task(); err != nil {
			global.Log.Warnf("定时任务 %s 执行失败: %v", name, err)
		}
	})
	return err
}
