package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ShippoBaseURL string
	ShippoAPIKey  string

	SenderName    string
	SenderPhone   string
	SenderEmail   string
	SenderLine1   string
	SenderLine2   string
	SenderCity    string
	SenderState   string
	SenderZip     string
	SenderCountry string

	// ExcludedServices lists carrier services rate shopping skips, as
	// comma-separated "Carrier:Service" pairs, e.g.
	// "UPS:Ground Saver,USPS:Media Mail".
	ExcludedServices string

	AgentAPIKey string

	// ClaimLeaseSeconds is how long an agent holds a claimed print job
	// before the claim is considered stale.
	ClaimLeaseSeconds int
	// PrintMaxAttempts caps print attempts before a job parks in Failed.
	PrintMaxAttempts int
	// AutoFulfill enables the background sweep that fulfills imported
	// orders without operator action.
	AutoFulfill bool
}
