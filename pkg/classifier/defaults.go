package classifier

// DefaultCategories returns the built-in category table covering common IT
// support scenarios. The returned slice is a fresh copy; callers may append
// to it freely. The table always ends with the "other" fallback entry.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:        "password_reset",
			Description: "User needs password reset or unlock",
			Keywords:    []string{"password", "forgot", "reset", "unlock", "locked out", "can't login", "cannot login"},
			Patterns: []string{
				`forgot.*password`,
				`reset.*password`,
				`locked.*out`,
				`can'?t.*log.*in`,
				`unlock.*account`,
			},
			Priority:       PriorityHigh,
			AutoResolvable: true,
		},
		{
			Name:        "disk_space",
			Description: "Low disk space or storage issues",
			Keywords:    []string{"disk", "space", "full", "storage", "c drive", "drive full", "out of space"},
			Patterns: []string{
				`disk.*full`,
				`out.*of.*space`,
				`low.*disk`,
				`storage.*full`,
				`c:?\\?.*full`,
			},
			Priority:       PriorityMedium,
			AutoResolvable: true,
		},
		{
			Name:        "printer_issue",
			Description: "Printer not working or printing problems",
			Keywords:    []string{"printer", "print", "printing", "queue", "spooler", "jam", "toner"},
			Patterns: []string{
				`printer.*not.*work\w*`,
				`printer.*is.*not.*work\w*`,
				`printer.*down`,
				`printer.*broken`,
				`can'?t.*print`,
				`print.*not.*work\w*`,
				`print.*queue`,
				`spooler`,
				`paper.*jam`,
				`printer.*issue`,
				`printer.*problem`,
			},
			Priority:       PriorityMedium,
			AutoResolvable: true,
		},
		{
			Name:        "email_issue",
			Description: "Email sending, receiving, or configuration problems",
			Keywords:    []string{"email", "outlook", "can't send", "can't receive", "mailbox", "smtp", "exchange"},
			Patterns: []string{
				`email.*not.*work\w*`,
				`can'?t.*send.*email`,
				`can'?t.*receive`,
				`outlook.*error`,
				`mailbox.*full`,
			},
			Priority:       PriorityHigh,
			AutoResolvable: false,
		},
		{
			Name:        "software_install",
			Description: "Software installation or update request",
			Keywords:    []string{"install", "software", "application", "teams", "zoom", "office", "chrome"},
			Patterns: []string{
				`install\s+software`,
				`install\s+\w+\s+on`,
				`need\s+install`,
				`install\s+application`,
				`download\s+and\s+install`,
				`please\s+install`,
				`need\s+\w+\s+on\s+laptop`,
				`need\s+\w+\s+on\s+computer`,
				`install\s+teams`,
				`install\s+zoom`,
				`install\s+office`,
			},
			Priority:       PriorityMedium,
			AutoResolvable: false,
		},
		{
			Name:        "network_issue",
			Description: "Network connectivity or VPN problems",
			Keywords:    []string{"network", "internet", "wifi", "vpn", "connection", "ethernet", "lan"},
			Patterns: []string{
				`no.*internet`,
				`can'?t.*connect`,
				`vpn.*not.*work\w*`,
				`wifi.*down`,
				`wifi.*not.*work\w*`,
				`wifi.*is.*not.*work\w*`,
				`network.*issue`,
				`network.*down`,
				`no.*connection`,
				`internet.*slow`,
				`no.*wifi`,
			},
			Priority:       PriorityHigh,
			AutoResolvable: false,
		},
		{
			Name:        "license_request",
			Description: "Software license or Microsoft 365 license request",
			Keywords:    []string{"license", "office 365", "m365", "microsoft 365", "subscription", "activation"},
			Patterns: []string{
				`need.*license`,
				`office.*365`,
				`m365`,
				`microsoft.*365`,
				`license.*expired`,
			},
			Priority:       PriorityMedium,
			AutoResolvable: true,
		},
		{
			Name:        "hardware_issue",
			Description: "Hardware malfunction or replacement needed",
			Keywords:    []string{"hardware", "broken", "monitor", "keyboard", "mouse", "laptop", "computer", "screen"},
			Patterns: []string{
				`hardware\s+fail`,
				`monitor\s+broken`,
				`monitor\s+not\s+work\w*`,
				`keyboard\s+not\s+work\w*`,
				`mouse\s+not\s+work\w*`,
				`laptop\s+broken`,
				`screen\s+broken`,
				`\w+\s+is\s+broken`,
			},
			Priority:       PriorityMedium,
			AutoResolvable: false,
		},
		{
			Name:        "access_request",
			Description: "Request for access to files, folders, or systems",
			Keywords:    []string{"access", "permission", "folder", "file", "share", "drive", "denied"},
			Patterns: []string{
				`need.*access.*to`,
				`permission.*denied`,
				`can'?t.*access`,
				`access.*request`,
				`share.*folder`,
			},
			Priority:       PriorityMedium,
			AutoResolvable: true,
		},
		{
			Name:        "application_error",
			Description: "Application crash, error, or performance issue",
			Keywords:    []string{"error", "crash", "slow", "frozen", "not responding", "bug", "excel", "word", "outlook"},
			Patterns: []string{
				`application\s+crash`,
				`program\s+error`,
				`not\s+responding`,
				`software\s+slow`,
				`keeps\s+crashing`,
				`\w+\s+crash`,
				`\w+\s+keeps\s+crash`,
				`\w+\s+frozen`,
				`\w+\s+error`,
			},
			Priority:       PriorityMedium,
			AutoResolvable: false,
		},
		{
			Name:           FallbackName,
			Description:    "General inquiry or uncategorized issue",
			Keywords:       []string{},
			Patterns:       []string{},
			Priority:       PriorityLow,
			AutoResolvable: false,
		},
	}
}
