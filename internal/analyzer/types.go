package analyzer

// RiskLevel grades how risky a carrier assignment looks.
type RiskLevel string

// Risk levels, lowest to highest.
const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// CarrierInfo is the primary carrier assignment for a number.
type CarrierInfo struct {
	Name              string    `json:"name"`
	RiskLevel         RiskLevel `json:"risk_level"`
	VerificationScore int       `json:"verification_score"`
	LastPortDate      *string   `json:"last_port_date"`
	NetworkType       string    `json:"network_type"`
	MCC               string    `json:"mcc"`
	MNC               string    `json:"mnc"`
	Region            string    `json:"region"`
	Active            bool      `json:"active"`
}

// NetworkInfo describes the network the carrier operates.
type NetworkInfo struct {
	Technology string   `json:"technology"`
	Coverage   string   `json:"coverage"`
	Services   []string `json:"services"`
	Roaming    bool     `json:"roaming"`
}

// SecurityInfo summarizes security signals for the number.
type SecurityInfo struct {
	RiskLevel         RiskLevel `json:"risk_level"`
	VerificationScore string    `json:"verification_score"`
	Alerts            []string  `json:"alerts"`
	SpamReports       int       `json:"spam_reports"`
	Blacklisted       bool      `json:"blacklisted"`
}

// CommercialInfo describes the subscription attached to the number.
type CommercialInfo struct {
	PlanType      string `json:"plan_type"`
	AccountStatus string `json:"account_status"`
	ActivationAge string `json:"activation_age"`
	Promotional   bool   `json:"promotional"`
}

// PortingHistory records carrier changes for the number.
type PortingHistory struct {
	PortCount        int      `json:"port_count"`
	PreviousCarriers []string `json:"previous_carriers"`
	PortDates        []string `json:"port_dates"`
	PortReasons      []string `json:"port_reasons"`
}

// UsageHistory summarizes observed usage patterns.
type UsageHistory struct {
	CallPattern      string   `json:"call_pattern"`
	DataUsage        string   `json:"data_usage"`
	Locations        []string `json:"locations"`
	FrequentServices []string `json:"frequent_services"`
}

// IdentityVerification describes how the subscriber identity was verified.
type IdentityVerification struct {
	Method             string `json:"method"`
	Score              int    `json:"score"`
	LastVerified       string `json:"last_verified"`
	DocumentsValidated bool   `json:"documents_validated"`
	TrustLevel         string `json:"trust_level"`
}

// FraudAnalysis captures fraud indicators for the number.
type FraudAnalysis struct {
	RiskIndicators []string `json:"risk_indicators"`
	ActivityAlerts []string `json:"activity_alerts"`
	Suspicious     bool     `json:"suspicious"`
	Recommendation string   `json:"recommendation"`
}

// CarrierDetails is the full carrier analysis for a number.
type CarrierDetails struct {
	Carrier    CarrierInfo          `json:"carrier_info"`
	Network    NetworkInfo          `json:"network_info"`
	Security   SecurityInfo         `json:"security"`
	Commercial CommercialInfo       `json:"commercial"`
	Porting    PortingHistory       `json:"porting_history"`
	Usage      UsageHistory         `json:"usage_history"`
	Identity   IdentityVerification `json:"identity_verification"`
	Fraud      FraudAnalysis        `json:"fraud_analysis"`
	Location   string               `json:"location,omitempty"`
	Timezones  []string             `json:"timezones,omitempty"`
	RegionName string               `json:"region_name,omitempty"`
}
