package job

import (
	"io"
	"os"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/util/common"
)

// ClearLogsJob moves the current log into a ".prev" file and truncates it,
// so at most two periods of logs are kept on disk.
type ClearLogsJob struct {
	logPath string
}

func NewClearLogsJob(logPath string) *ClearLogsJob {
	return &ClearLogsJob{logPath: logPath}
}

// Run implements cron.Job.
func (j *ClearLogsJob) Run() {
	defer common.Recover("clear logs job")

	prevPath := j.logPath + ".prev"

	src, err := os.Open(j.logPath)
	if os.IsNotExist(err) {
		return
	} else if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	defer src.Close()

	dst, err := os.OpenFile(prevPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640)
	if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		logger.Warning("clear logs job err:", err)
		return
	}
	if err := dst.Close(); err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}

	// The file backend opens with O_APPEND, so it keeps writing from offset zero.
	if err := os.Truncate(j.logPath, 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
