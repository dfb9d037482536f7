package job

import (
	"time"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/util/common"
	"github.com/dukcapil-minsel/suket/util/metrics"
	"github.com/dukcapil-minsel/suket/web/service"
)

// Pruner removes certificates older than maxAge.
type Pruner interface {
	Prune(maxAge time.Duration, now time.Time) (int, error)
}

var _ Pruner = (*service.CertificateService)(nil)

// PruneCertificatesJob keeps the output directory from growing without bound.
type PruneCertificatesJob struct {
	pruner Pruner
	maxAge time.Duration
	now    func() time.Time
}

func NewPruneCertificatesJob(pruner Pruner, maxAge time.Duration) *PruneCertificatesJob {
	return &PruneCertificatesJob{pruner: pruner, maxAge: maxAge, now: time.Now}
}

// Run implements cron.Job.
func (j *PruneCertificatesJob) Run() {
	defer common.Recover("prune certificates job")

	removed, err := j.pruner.Prune(j.maxAge, j.now())
	if err != nil {
		logger.Warning("prune certificates job err:", err)
		return
	}
	if removed > 0 {
		metrics.CertificatesPruned.Add(float64(removed))
		logger.Infof("pruned %d certificates older than %s", removed, j.maxAge)
	}
}
