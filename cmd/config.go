package cmd

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	RedisAddr            string
	CurrentStoreID       string
	WorkflowsFile        string
	LockWaitSeconds      int
	AutoCompleteSchedule string
	AutoCompleteAgeHours int
}
