// Package storage persists staffing evaluations. The engine itself
// performs no I/O; the serving layer writes a record per evaluation so
// planners can review past staffing decisions.
package storage

// EvaluationRecord is a persisted staffing evaluation
type EvaluationRecord struct {
	DateKey   string `json:"dateKey" dynamodbav:"DateKey"` // YYYY-MM-DD (partition key)
	ID        string `json:"id" dynamodbav:"ID"`           // sort key
	Timestamp string `json:"timestamp" dynamodbav:"Timestamp"` // RFC3339

	// Inputs, in call-center units
	ArrivalRatePerHour   float64 `json:"arrivalRatePerHour" dynamodbav:"ArrivalRatePerHour"`
	AvgHandleTimeSecs    float64 `json:"avgHandleTimeSecs" dynamodbav:"AvgHandleTimeSecs"`
	AgentCount           int     `json:"agentCount" dynamodbav:"AgentCount"`
	TargetServiceLevel   float64 `json:"targetServiceLevel" dynamodbav:"TargetServiceLevel"`
	TargetAnswerTimeSecs float64 `json:"targetAnswerTimeSecs" dynamodbav:"TargetAnswerTimeSecs"`

	// Outputs
	TrafficIntensity float64 `json:"trafficIntensity" dynamodbav:"TrafficIntensity"` // erlangs
	WaitProbability  float64 `json:"waitProbability" dynamodbav:"WaitProbability"`
	AverageWaitSecs  float64 `json:"averageWaitSecs" dynamodbav:"AverageWaitSecs"` // -1 when the queue is unstable
	ServiceLevel     float64 `json:"serviceLevel" dynamodbav:"ServiceLevel"`
	RequiredAgents   int     `json:"requiredAgents" dynamodbav:"RequiredAgents"`
	MeetsTarget      bool    `json:"meetsTarget" dynamodbav:"MeetsTarget"`
	QueueStable      bool    `json:"queueStable" dynamodbav:"QueueStable"`
}

// Store defines the storage interface
type Store interface {
	SaveEvaluation(record EvaluationRecord) error
	GetEvaluations(dateKey string) ([]EvaluationRecord, error)
	TruncateAll() error
}

// NoopStore is a no-op implementation when persistence is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) SaveEvaluation(_ EvaluationRecord) error              { return nil }
func (s *NoopStore) GetEvaluations(_ string) ([]EvaluationRecord, error)  { return nil, nil }
func (s *NoopStore) TruncateAll() error                                   { return nil }
