// Package playbook holds the seven compile-time playbook
// configurations the review core ships with — one per supported
// contract type. Each playbook is an immutable authored value; there
// is no playbook registry mutation or runtime loading.
package playbook

import "github.com/brunobiangulo/contractreview"

// Key is one of the seven closed playbook keys (spec.md §6).
type Key string

const (
	KeyDataProcessingAgreement     Key = "data_processing_agreement"
	KeyNonDisclosureAgreement      Key = "non_disclosure_agreement"
	KeyPrivacyPolicyDocument       Key = "privacy_policy_document"
	KeyConsultancyAgreement        Key = "consultancy_agreement"
	KeyResearchDevelopmentAgreement Key = "research_development_agreement"
	KeyEndUserLicenseAgreement     Key = "end_user_license_agreement"
	KeyProfessionalServicesAgreement Key = "professional_services_agreement"
)

// All is the closed, ordered set of supported playbook keys.
var All = []Key{
	KeyDataProcessingAgreement,
	KeyNonDisclosureAgreement,
	KeyPrivacyPolicyDocument,
	KeyConsultancyAgreement,
	KeyResearchDevelopmentAgreement,
	KeyEndUserLicenseAgreement,
	KeyProfessionalServicesAgreement,
}

// ByKey resolves a raw playbookKey string to its compiled Playbook.
// The bool is false for any key outside the closed set.
func ByKey(key string) (contractreview.Playbook, bool) {
	p, ok := registry[Key(key)]
	return p, ok
}

var registry = map[Key]contractreview.Playbook{
	KeyDataProcessingAgreement:      dataProcessingAgreement,
	KeyNonDisclosureAgreement:       nonDisclosureAgreement,
	KeyPrivacyPolicyDocument:        privacyPolicyDocument,
	KeyConsultancyAgreement:         consultancyAgreement,
	KeyResearchDevelopmentAgreement: researchDevelopmentAgreement,
	KeyEndUserLicenseAgreement:      endUserLicenseAgreement,
	KeyProfessionalServicesAgreement: professionalServicesAgreement,
}

var dataProcessingAgreement = contractreview.Playbook{
	Key:         string(KeyDataProcessingAgreement),
	DisplayName: "Data Processing Agreement",
	Description: "A processor/sub-processor agreement governing the processing of personal data on a controller's behalf.",
	ClauseAnchors: []contractreview.ClauseAnchor{
		{Heading: "SCOPE AND PURPOSE OF PROCESSING"},
		{Heading: "SECURITY MEASURES"},
		{Heading: "SUB-PROCESSORS"},
		{Heading: "DATA SUBJECT RIGHTS"},
		{Heading: "INTERNATIONAL TRANSFERS"},
		{Heading: "BREACH NOTIFICATION"},
		{Heading: "AUDIT RIGHTS"},
		{Heading: "DELETION OR RETURN OF DATA"},
		{Heading: "Export control / sanctions (if relevant)", Optional: true},
	},
	CriticalClauses: []contractreview.CriticalClause{
		{
			Title:       "Processing instructions",
			MustInclude: []string{"documented instructions", "controller"},
		},
		{
			Title:       "Confidentiality of personnel",
			MustInclude: []string{"confidentiality"},
		},
	},
	Checklist: []contractreview.PlaybookChecklistItem{
		{
			ID:              "CHECK_DPA_01",
			Title:           "Processing scope and purpose",
			Description:     "The agreement states the subject matter, duration, nature, and purpose of processing.",
			RequiredSignals: []string{"nature and purpose", "duration", "documented instructions"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"SCOPE AND PURPOSE OF PROCESSING"}},
			InsertionPolicyKey: "after_heading:SCOPE AND PURPOSE OF PROCESSING|DEFINITIONS",
		},
		{
			ID:              "CHECK_DPA_02",
			Title:           "Security measures",
			Description:     "Appropriate technical and organizational measures are described, including encryption.",
			RequiredSignals: []string{"technical and organizational", "re:encrypt\\w*"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"SECURITY MEASURES"}, Topics: []string{"security"}},
			InsertionPolicyKey: "after_heading:SECURITY MEASURES|SCOPE AND PURPOSE OF PROCESSING",
		},
		{
			ID:              "CHECK_DPA_03",
			Title:           "Sub-processor authorization",
			Description:     "Sub-processors may only be engaged with prior authorization and flow-down obligations.",
			RequiredSignals: []string{"sub-processor", "prior written authorization"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"SUB-PROCESSORS"}, Topics: []string{"subprocessor"}},
			InsertionPolicyKey: "after_heading:SUB-PROCESSORS|SECURITY MEASURES",
		},
		{
			ID:              "CHECK_DPA_04",
			Title:           "Data subject rights assistance",
			Description:     "The processor assists the controller in responding to data subject requests.",
			RequiredSignals: []string{"data subject", "assist"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"DATA SUBJECT RIGHTS"}},
			InsertionPolicyKey: "after_heading:DATA SUBJECT RIGHTS|SUB-PROCESSORS",
		},
		{
			ID:              "CHECK_DPA_05",
			Title:           "Breach notification timeline",
			Description:     "The processor must notify the controller of a personal data breach without undue delay.",
			RequiredSignals: []string{"without undue delay", "personal data breach"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"BREACH NOTIFICATION"}},
			InsertionPolicyKey: "after_heading:BREACH NOTIFICATION|DATA SUBJECT RIGHTS",
		},
		{
			ID:              "CHECK_DPA_06",
			Title:           "Deletion or return of data",
			Description:     "At the end of services, the processor deletes or returns all personal data.",
			RequiredSignals: []string{"delete", "return"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"DELETION OR RETURN OF DATA"}},
			InsertionPolicyKey: "end_of_document",
		},
	},
}

var nonDisclosureAgreement = contractreview.Playbook{
	Key:         string(KeyNonDisclosureAgreement),
	DisplayName: "Non-Disclosure Agreement",
	Description: "A mutual or one-way confidentiality agreement protecting a disclosing party's confidential information.",
	ClauseAnchors: []contractreview.ClauseAnchor{
		{Heading: "DEFINITION OF CONFIDENTIAL INFORMATION"},
		{Heading: "OBLIGATIONS OF RECEIVING PARTY"},
		{Heading: "EXCLUSIONS"},
		{Heading: "COMPELLED DISCLOSURE"},
		{Heading: "TERM AND SURVIVAL"},
		{Heading: "REMEDIES"},
		{Heading: "Remedies / injunctive relief", Optional: true},
	},
	CriticalClauses: []contractreview.CriticalClause{
		{
			Title:       "Definition of Confidential Information",
			MustInclude: []string{"confidential"},
		},
		{
			Title:       "Compelled disclosure",
			MustInclude: []string{"required by law"},
		},
	},
	Checklist: []contractreview.PlaybookChecklistItem{
		{
			ID:              "CHECK_NDA_01",
			Title:           "Definition of Confidential Information",
			Description:     "The agreement defines what counts as Confidential Information.",
			RequiredSignals: []string{"confidential information"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"DEFINITION OF CONFIDENTIAL INFORMATION"}},
			InsertionPolicyKey: "after_heading:DEFINITION OF CONFIDENTIAL INFORMATION|PREAMBLE",
		},
		{
			ID:              "CHECK_NDA_02",
			Title:           "Purpose/use limitation",
			Description:     "The receiving party may use Confidential Information only for the stated Purpose.",
			RequiredSignals: []string{"use", "purpose", "not"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"OBLIGATIONS OF RECEIVING PARTY"}},
			InsertionPolicyKey: "after_heading:OBLIGATIONS OF RECEIVING PARTY|DEFINITION OF CONFIDENTIAL INFORMATION",
		},
		{
			ID:              "CHECK_NDA_03",
			Title:           "Compelled disclosure carve-out",
			Description:     "Disclosure required by law, court order, or protective order does not breach the agreement.",
			RequiredSignals: []string{"required by law", "court order"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"COMPELLED DISCLOSURE"}},
			InsertionPolicyKey: "after_heading:COMPELLED DISCLOSURE|OBLIGATIONS OF RECEIVING PARTY",
		},
		{
			ID:              "CHECK_NDA_04",
			Title:           "Term and survival",
			Description:     "The agreement states its term and that confidentiality obligations survive termination.",
			RequiredSignals: []string{"survive", "term"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"TERM AND SURVIVAL"}},
			InsertionPolicyKey: "end_of_document",
		},
		{
			ID:              "CHECK_NDA_05",
			Title:           "Remedies",
			Description:     "The agreement acknowledges that breach causes irreparable harm warranting equitable relief.",
			RequiredSignals: []string{"injunction", "irreparable harm"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"REMEDIES"}},
			InsertionPolicyKey: "after_heading:REMEDIES|TERM AND SURVIVAL",
		},
	},
}

var privacyPolicyDocument = contractreview.Playbook{
	Key:         string(KeyPrivacyPolicyDocument),
	DisplayName: "Privacy Policy",
	Description: "A public-facing notice describing how personal data is collected, used, and shared.",
	ClauseAnchors: []contractreview.ClauseAnchor{
		{Heading: "INFORMATION WE COLLECT"},
		{Heading: "HOW WE USE INFORMATION"},
		{Heading: "SHARING OF INFORMATION"},
		{Heading: "YOUR RIGHTS AND CHOICES"},
		{Heading: "DATA RETENTION"},
		{Heading: "INTERNATIONAL TRANSFERS", Optional: true},
		{Heading: "CONTACT US"},
	},
	CriticalClauses: []contractreview.CriticalClause{
		{
			Title:       "Categories of personal data collected",
			MustInclude: []string{"collect"},
		},
	},
	Checklist: []contractreview.PlaybookChecklistItem{
		{
			ID:              "CHECK_PRIV_01",
			Title:           "Categories of data collected",
			Description:     "The policy enumerates the categories of personal data collected.",
			RequiredSignals: []string{"collect"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"INFORMATION WE COLLECT"}},
			InsertionPolicyKey: "after_heading:INFORMATION WE COLLECT",
		},
		{
			ID:              "CHECK_PRIV_02",
			Title:           "Purposes of use",
			Description:     "The policy states the purposes for which personal data is used.",
			RequiredSignals: []string{"use", "purpose"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"HOW WE USE INFORMATION"}},
			InsertionPolicyKey: "after_heading:HOW WE USE INFORMATION|INFORMATION WE COLLECT",
		},
		{
			ID:              "CHECK_PRIV_03",
			Title:           "Third-party sharing disclosure",
			Description:     "The policy discloses categories of third parties personal data is shared with.",
			RequiredSignals: []string{"share", "third part"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"SHARING OF INFORMATION"}},
			InsertionPolicyKey: "after_heading:SHARING OF INFORMATION|HOW WE USE INFORMATION",
		},
		{
			ID:              "CHECK_PRIV_04",
			Title:           "User rights and choices",
			Description:     "The policy describes user rights (access, deletion, opt-out).",
			RequiredSignals: []string{"access", "delete"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"YOUR RIGHTS AND CHOICES"}},
			InsertionPolicyKey: "after_heading:YOUR RIGHTS AND CHOICES|SHARING OF INFORMATION",
		},
		{
			ID:              "CHECK_PRIV_05",
			Title:           "Retention period",
			Description:     "The policy states how long personal data is retained.",
			RequiredSignals: []string{"retain", "period"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"DATA RETENTION"}},
			InsertionPolicyKey: "after_heading:DATA RETENTION|YOUR RIGHTS AND CHOICES",
		},
		{
			ID:              "CHECK_PRIV_06",
			Title:           "Contact information",
			Description:     "The policy provides a means of contacting the data controller.",
			RequiredSignals: []string{"contact"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"CONTACT US"}},
			InsertionPolicyKey: "end_of_document",
		},
	},
}

var consultancyAgreement = contractreview.Playbook{
	Key:         string(KeyConsultancyAgreement),
	DisplayName: "Consultancy Agreement",
	Description: "An independent-contractor agreement for the provision of consulting services.",
	ClauseAnchors: []contractreview.ClauseAnchor{
		{Heading: "SERVICES"},
		{Heading: "FEES AND PAYMENT"},
		{Heading: "INDEPENDENT CONTRACTOR STATUS"},
		{Heading: "INTELLECTUAL PROPERTY"},
		{Heading: "CONFIDENTIALITY"},
		{Heading: "TERMINATION"},
		{Heading: "LIMITATION OF LIABILITY"},
	},
	CriticalClauses: []contractreview.CriticalClause{
		{
			Title:       "No transfer of IP ownership",
			MustInclude: []string{"assign"},
		},
		{
			Title:       "Independent contractor status",
			MustInclude: []string{"not an employee"},
		},
	},
	Checklist: []contractreview.PlaybookChecklistItem{
		{
			ID:              "CHECK_CONS_01",
			Title:           "Scope of services",
			Description:     "The agreement describes the consulting services to be performed.",
			RequiredSignals: []string{"services"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"SERVICES"}},
			InsertionPolicyKey: "after_heading:SERVICES",
		},
		{
			ID:              "CHECK_CONS_02",
			Title:           "Fees and payment terms",
			Description:     "The agreement states the consultant's fees and payment schedule.",
			RequiredSignals: []string{"fee", "invoice"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"FEES AND PAYMENT"}},
			InsertionPolicyKey: "after_heading:FEES AND PAYMENT|SERVICES",
		},
		{
			ID:              "CHECK_CONS_03",
			Title:           "Independent contractor status",
			Description:     "The agreement states the consultant is an independent contractor, not an employee.",
			RequiredSignals: []string{"independent contractor", "not an employee"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"INDEPENDENT CONTRACTOR STATUS"}},
			InsertionPolicyKey: "after_heading:INDEPENDENT CONTRACTOR STATUS|FEES AND PAYMENT",
		},
		{
			ID:              "CHECK_CONS_04",
			Title:           "IP assignment to client",
			Description:     "Work product IP is assigned to the client upon payment.",
			RequiredSignals: []string{"assign", "work product"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"INTELLECTUAL PROPERTY"}},
			InsertionPolicyKey: "after_heading:INTELLECTUAL PROPERTY|INDEPENDENT CONTRACTOR STATUS",
		},
		{
			ID:              "CHECK_CONS_05",
			Title:           "Termination rights",
			Description:     "Either party may terminate the agreement on stated notice.",
			RequiredSignals: []string{"terminate", "notice"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"TERMINATION"}},
			InsertionPolicyKey: "after_heading:TERMINATION|INTELLECTUAL PROPERTY",
		},
	},
}

var researchDevelopmentAgreement = contractreview.Playbook{
	Key:         string(KeyResearchDevelopmentAgreement),
	DisplayName: "Research & Development Agreement",
	Description: "An agreement governing joint or sponsored research and the resulting IP.",
	ClauseAnchors: []contractreview.ClauseAnchor{
		{Heading: "RESEARCH PROGRAM"},
		{Heading: "FUNDING AND BUDGET"},
		{Heading: "BACKGROUND IP"},
		{Heading: "FOREGROUND IP OWNERSHIP"},
		{Heading: "PUBLICATION RIGHTS"},
		{Heading: "CONFIDENTIALITY"},
		{Heading: "Export control / sanctions (if relevant)", Optional: true},
	},
	CriticalClauses: []contractreview.CriticalClause{
		{
			Title:       "No implied license",
			MustInclude: []string{"license"},
		},
	},
	Checklist: []contractreview.PlaybookChecklistItem{
		{
			ID:              "CHECK_RND_01",
			Title:           "Research program description",
			Description:     "The agreement describes the scope of the research program.",
			RequiredSignals: []string{"research"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"RESEARCH PROGRAM"}},
			InsertionPolicyKey: "after_heading:RESEARCH PROGRAM",
		},
		{
			ID:              "CHECK_RND_02",
			Title:           "Funding and budget",
			Description:     "The agreement states the funding committed and the budget mechanism.",
			RequiredSignals: []string{"fund", "budget"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"FUNDING AND BUDGET"}},
			InsertionPolicyKey: "after_heading:FUNDING AND BUDGET|RESEARCH PROGRAM",
		},
		{
			ID:              "CHECK_RND_03",
			Title:           "Background IP retained",
			Description:     "Each party retains ownership of its background IP brought into the program.",
			RequiredSignals: []string{"background", "retain"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"BACKGROUND IP"}},
			InsertionPolicyKey: "after_heading:BACKGROUND IP|FUNDING AND BUDGET",
		},
		{
			ID:              "CHECK_RND_04",
			Title:           "Foreground IP ownership",
			Description:     "The agreement states who owns IP created during the program.",
			RequiredSignals: []string{"foreground", "own"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"FOREGROUND IP OWNERSHIP"}},
			InsertionPolicyKey: "after_heading:FOREGROUND IP OWNERSHIP|BACKGROUND IP",
		},
		{
			ID:              "CHECK_RND_05",
			Title:           "Publication rights and review window",
			Description:     "Researchers may publish results subject to a pre-publication review window.",
			RequiredSignals: []string{"publish", "review"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"PUBLICATION RIGHTS"}},
			InsertionPolicyKey: "after_heading:PUBLICATION RIGHTS|FOREGROUND IP OWNERSHIP",
		},
	},
}

var endUserLicenseAgreement = contractreview.Playbook{
	Key:         string(KeyEndUserLicenseAgreement),
	DisplayName: "End User License Agreement",
	Description: "A license agreement governing an end user's rights to use licensed software.",
	ClauseAnchors: []contractreview.ClauseAnchor{
		{Heading: "GRANT OF LICENSE"},
		{Heading: "RESTRICTIONS"},
		{Heading: "NO TRANSFER OF IP OWNERSHIP"},
		{Heading: "WARRANTY DISCLAIMER"},
		{Heading: "LIMITATION OF LIABILITY"},
		{Heading: "TERMINATION"},
	},
	CriticalClauses: []contractreview.CriticalClause{
		{
			Title:       "No transfer of IP ownership",
			MustInclude: []string{"no license", "reserved"},
		},
	},
	Checklist: []contractreview.PlaybookChecklistItem{
		{
			ID:              "CHECK_EULA_01",
			Title:           "Grant of license scope",
			Description:     "The agreement grants a defined, limited license to use the software.",
			RequiredSignals: []string{"license", "limited"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"GRANT OF LICENSE"}},
			InsertionPolicyKey: "after_heading:GRANT OF LICENSE",
		},
		{
			ID:              "CHECK_EULA_02",
			Title:           "Usage restrictions",
			Description:     "The agreement restricts reverse engineering and redistribution.",
			RequiredSignals: []string{"reverse engineer", "not"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"RESTRICTIONS"}},
			InsertionPolicyKey: "after_heading:RESTRICTIONS|GRANT OF LICENSE",
		},
		{
			ID:              "CHECK_EULA_03",
			Title:           "No transfer of IP ownership",
			Description:     "The license does not transfer ownership of the software or any implied license beyond its terms.",
			RequiredSignals: []string{"no license", "not granted or implied"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"NO TRANSFER OF IP OWNERSHIP"}},
			InsertionPolicyKey: "after_heading:NO TRANSFER OF IP OWNERSHIP|RESTRICTIONS",
		},
		{
			ID:              "CHECK_EULA_04",
			Title:           "Warranty disclaimer",
			Description:     "The software is provided \"as is\" without warranty of any kind.",
			RequiredSignals: []string{"as is", "warrant"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"WARRANTY DISCLAIMER"}},
			InsertionPolicyKey: "after_heading:WARRANTY DISCLAIMER|NO TRANSFER OF IP OWNERSHIP",
		},
		{
			ID:              "CHECK_EULA_05",
			Title:           "Liability cap",
			Description:     "Liability is limited to amounts paid under the license in the preceding period.",
			RequiredSignals: []string{"limitation of liability", "amounts paid"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"LIMITATION OF LIABILITY"}},
			InsertionPolicyKey: "after_heading:LIMITATION OF LIABILITY|WARRANTY DISCLAIMER",
		},
	},
}

var professionalServicesAgreement = contractreview.Playbook{
	Key:         string(KeyProfessionalServicesAgreement),
	DisplayName: "Professional Services Agreement",
	Description: "A statement-of-work-driven agreement for the delivery of professional services, including supply of deliverables.",
	ClauseAnchors: []contractreview.ClauseAnchor{
		{Heading: "STATEMENT OF WORK"},
		{Heading: "DELIVERABLES AND ACCEPTANCE"},
		{Heading: "FEES AND PAYMENT"},
		{Heading: "INTELLECTUAL PROPERTY"},
		{Heading: "WARRANTIES"},
		{Heading: "INDEMNIFICATION"},
		{Heading: "LIMITATION OF LIABILITY"},
		{Heading: "Remedies / injunctive relief", Optional: true},
	},
	CriticalClauses: []contractreview.CriticalClause{
		{
			Title:       "Deliverable acceptance criteria",
			MustInclude: []string{"accept"},
		},
	},
	Checklist: []contractreview.PlaybookChecklistItem{
		{
			ID:              "CHECK_PSA_01",
			Title:           "Statement of work incorporation",
			Description:     "The agreement incorporates one or more statements of work describing deliverables.",
			RequiredSignals: []string{"statement of work"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"STATEMENT OF WORK"}},
			InsertionPolicyKey: "after_heading:STATEMENT OF WORK",
		},
		{
			ID:              "CHECK_PSA_02",
			Title:           "Deliverable acceptance process",
			Description:     "The agreement defines an acceptance testing and rejection process for deliverables.",
			RequiredSignals: []string{"accept", "reject"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"DELIVERABLES AND ACCEPTANCE"}},
			InsertionPolicyKey: "after_heading:DELIVERABLES AND ACCEPTANCE|STATEMENT OF WORK",
		},
		{
			ID:              "CHECK_PSA_03",
			Title:           "Fees and invoicing",
			Description:     "The agreement states fees, milestones, and invoicing terms.",
			RequiredSignals: []string{"fee", "milestone"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"FEES AND PAYMENT"}},
			InsertionPolicyKey: "after_heading:FEES AND PAYMENT|DELIVERABLES AND ACCEPTANCE",
		},
		{
			ID:              "CHECK_PSA_04",
			Title:           "IP ownership of deliverables",
			Description:     "The agreement states who owns IP in the delivered work product.",
			RequiredSignals: []string{"intellectual property", "own"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"INTELLECTUAL PROPERTY"}},
			InsertionPolicyKey: "after_heading:INTELLECTUAL PROPERTY|FEES AND PAYMENT",
		},
		{
			ID:              "CHECK_PSA_05",
			Title:           "Liability cap and indemnification",
			Description:     "The agreement caps liability and allocates indemnification obligations.",
			RequiredSignals: []string{"indemnif", "limitation of liability"},
			EvidenceMapping: contractreview.EvidenceMapping{Headings: []string{"INDEMNIFICATION"}, Topics: []string{"liability"}},
			InsertionPolicyKey: "after_heading:LIMITATION OF LIABILITY|INDEMNIFICATION",
		},
	},
}
