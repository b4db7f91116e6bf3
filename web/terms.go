package web

// TermsSection is one block of the terms-of-service dialog.
type TermsSection struct {
	Heading string
	Body    string
}

// termsSections is the static legal text shown in the signup terms dialog.
// Fee and payment handling itself lives in the backend; this text only
// describes it.
var termsSections = []TermsSection{
	{
		Heading: "1. Introduction",
		Body:    `Welcome to Sellmate ("Company", "we", "our", "us"). These Terms of Service govern your use of our website located at sellmate.com operated by Sellmate.`,
	},
	{
		Heading: "2. User Accounts",
		Body:    "When you create an account with us, you must provide us information that is accurate, complete, and current at all times. Failure to do so constitutes a breach of the Terms, which may result in immediate termination of your account on our Service.",
	},
	{
		Heading: "3. Middleman Services",
		Body:    "Sellmate provides a platform that connects buyers, sellers, and middlemen to facilitate secure transactions. Middlemen on our platform are independent contractors and not employees of Sellmate.",
	},
	{
		Heading: "4. Fees and Payment",
		Body:    "Sellmate charges a service fee for transactions facilitated through our platform. The fee structure is clearly displayed before you confirm a transaction. All payments are in Philippine Pesos (₱).",
	},
	{
		Heading: "5. Prohibited Uses",
		Body:    "You may use our Service only for lawful purposes and in accordance with Terms. You agree not to use our Service for any illegal purpose or to solicit others to perform or participate in any unlawful acts.",
	},
	{
		Heading: "6. Termination",
		Body:    "We may terminate or suspend your account immediately, without prior notice or liability, for any reason whatsoever, including without limitation if you breach the Terms.",
	},
	{
		Heading: "7. Limitation of Liability",
		Body:    "In no event shall Sellmate, nor its directors, employees, partners, agents, suppliers, or affiliates, be liable for any indirect, incidental, special, consequential or punitive damages.",
	},
	{
		Heading: "8. Changes to Terms",
		Body:    "We reserve the right, at our sole discretion, to modify or replace these Terms at any time. If a revision is material we will try to provide at least 30 days notice prior to any new terms taking effect.",
	},
	{
		Heading: "9. Currency",
		Body:    "All monetary transactions and price displays on Sellmate are in Philippine Pesos (₱).",
	},
}

// TermsDialog is the dialog's view state, derived from the visitor's gate.
type TermsDialog struct {
	Open        bool
	Accepted    bool
	PendingRole string
	Sections    []TermsSection
}
