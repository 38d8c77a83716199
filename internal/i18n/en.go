package i18n

var english = Labels{
	Lang: English,

	Ledger:    "Ledger",
	Summary:   "Summary",
	Inventory: "Inventory",
	Creditors: "Creditors",
	Payables:  "Payables",
	Settings:  "Settings",
	Invoice:   "Invoice",

	GreetingBilingual: "👋 Welcome / स्वागत है!\nPlease enter your mobile number to begin.\nकृपया शुरू करने के लिए अपना मोबाइल नंबर दर्ज करें।",
	OTPPrompt:         "🔑 Please enter OTP sent to %s. (Mock OTP is %s).\n🔑 कृपया %s पर भेजा गया OTP दर्ज करें। (मॉक OTP है %s).",
	OTPVerified:       "✅ OTP verified. Please enter your name.",
	OTPInvalid:        "❌ Invalid OTP. Try again.",
	InvalidMobile:     "Please enter a valid mobile number (digits only).",
	InvalidName:       "Please enter a valid name.",
	RegisterFailed:    "Registration failed. Try again.",
	LookupFailed:      "❌ Could not reach the server. Please enter your mobile number again.",
	LanguagePrompt: `🌐 Choose your language / अपनी भाषा चुनें:
- Type **english** (or **en**) for English
- **हिंदी** टाइप करें (या **hi**) हिंदी के लिए

(You can switch anytime in the future.)`,
	Welcome:         "Welcome back, %s! You're in Ledger mode. Type entries directly, or commands: Summary / Inventory / Creditors / Payables / Settings / Invoice.",
	RegisterWelcome: "🎉 Registered successfully. Welcome %s! You're in Ledger mode. Type entries directly, or commands: Summary / Inventory / Creditors / Payables / Settings / Invoice.",
	Instructions: `📋 How to add entries

👉 Sales:
: 1000 → Cash sale of ₹1000
: 1000 Ramesh → Sale of ₹1000, Ramesh still has to pay
: 50 unit Maggi Pack of 2 1000 → Sold 50 units of Maggi Pack of 2 for ₹1000

👉 Expenses:
: -250 → Paid ₹250 in cash
: -250 Ramesh cash → Paid ₹250 in cash to Ramesh
: -250 Ramesh → Goods/services taken from Ramesh, payment pending

👉 Repayments:
: Ramesh paid 1000 → Customer Ramesh repaid ₹1000 (inflow)
: Paid Dal Vendor 1250 → Vendor Dal Vendor repaid ₹1250 (outflow)`,
	BackToLedger:     "✅ Back to Ledger. Add entries now.",
	Synced:           "🔄 Synced. Try: %s.",
	LoginFirst:       "Please login first.",
	LoginFirstUpload: "Please login first (enter your mobile number).",

	ParseFailed:  "Couldn't parse that entry. Try: '2 colgate 100 ml 104 rs', '1 surf excel 1 kg 210 rs credit to Ramesh', '- 250 electricity paid', '-1200 rent payable to Landlord'.",
	NothingSaved: "Nothing to save for that entry.",
	SaveFailed:   "Failed to save entry to database.",
	Saved:        "Saved %d item(s). Try: %s.",

	NoEntries:        "No entries yet.",
	LoadFailed:       "❌ Could not load your entries. Please try again.",
	InventoryTitle:   "📦 Inventory — Month to date (SKU units):",
	NoSalesThisMonth: "No sales recorded this month.",
	InventoryHint:    "(Enter a date like `12/08` or `12/aug`, a range like `12/08..15/08`, or type `ledger` to go back.)",
	NoSalesInPeriod:  "No sales in this period.",
	PagerHint:        "Type: next / prev / page N",
	DrillDownHeader:  "%s %s — %s (Page %d/%d, %d/page)",
	UnitsLine:        "%s: %d units",
	SummaryTitle:     "📊 %s Summary:",
	TotalRevenue:     "Total Revenue",
	TotalExpense:     "Total Expense",
	NetProfit:        "Net Profit / Loss",
	RevenueCash:      "Revenue (Cash)",
	RevenueCredit:    "Revenue (Credit)",
	ExpenseCash:      "Expense (Cash)",
	ExpensePayable:   "Expense (Payable)",
	DayWise:          "Day-wise totals:",
	DayLine:          "- %s: Tx %d • Cash %s, Credit %s, Paid %s, Payable %s, Net %s",
	SummaryHint:      "(Type a date like `12/08` or `12/aug` to see that day, or `ledger` to go back.)",
	NoTxOnDate:       "No transactions on this date.",
	DrillDownUnknown: "Type a date like `12/08`, `next`, `prev`, `page N`, or `ledger` to go back.",
	CreditorsTitle:   "📒 Creditors — Month to date",
	TotalReceivables: "Total Receivables",
	CustomerWise:     "Customer-wise:",
	CreditorsEmpty:   "No outstanding credits for this month.",
	CreditorsHint:    "(Type a customer name to view date-wise details, or 'ledger' to go back.)",
	CreditorDetails:  "📒 Date-wise (Month to date)",
	CreditorLine:     "%s, %s, Item bought by customer: %s, %d days pending",
	CreditorMore:     "(Type another customer name, or 'ledger' to go back.)",
	PayablesTitle:    "📚 Payables — Month to date",
	TotalPayables:    "Total Payables",
	VendorWise:       "Vendor-wise:",
	PayablesEmpty:    "No outstanding payables for this month.",
	PayablesHint:     "(Type a vendor name to view date-wise details, or 'ledger' to go back.)",
	PayableDetails:   "📚 Date-wise (Month to date)",
	PayableLine:      "%s, %s, Payable head: %s, %d days pending",
	PayableMore:      "(Type another vendor name, or 'ledger' to go back.)",
	NoPartyEntries:   "No entries for \"%s\" this month.",
	Subtotal:         "Subtotal",
	UnknownCustomer:  "Unknown",
	UnknownVendor:    "Unknown Vendor",
	DefaultSaleLabel: "Sale",
	DefaultExpense:   "Expense",
	MonthNames: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	SettingsPanel: `⚙️ Settings:
• Store Name: %s
• Store Address: %s
• GST Number: %s
• Contact Number: %s

Update one field at a time:
- store name: My Shop
- store address: 12, MG Road, Pune
- gst: 27ABCDE1234Z1Z5
- contact: 9876543210

Type 'ledger' to go back.`,
	SettingsSaved:    "✅ Saved. Type `show` to view, or update another field, or `ledger` to exit.",
	SettingsFail:     "❌ Failed to update settings.",
	SettingsLoadFail: "❌ Could not load settings. Please try again.",
	ConfirmField:     "You entered:\n%s: %s\n\nType 'yes' to confirm or 'no' to re-enter.",
	EnterInvoice:     "🧾 Create Invoice mode.\nStep 1/3 — Enter customer name:",
	EnterItemsHelp: `Step 2/3 — Add items (one per line):
Format: description - price - gst%
Example: 5kg Atta - 450 - 5

Type items now. When done, type 'done'. You can 'remove N', 'preview', or 'cancel'.`,
	EnterTerms:        "Step 3/3 — Enter payment terms (or type 'skip' for none).",
	Generating:        "🛠️ Generating your PDF invoice…",
	InvoiceFail:       "❌ Failed to generate invoice.",
	InvoiceReady:      "📎 Invoice generated for %s — %s",
	EmptyStoreWarning: "⚠️ Your store details look empty. Set them via \"settings\" for a proper header.",
	Cancelled:         "❎ Cancelled. Back to Ledger.",
	AddedItem:         "✅ #%d) %s — ₹%s • GST %s%%",
	RemovedItem:       "🗑️ Removed item #%d.",
	ConfirmCustomer:   "You entered customer: “%s”.\nType 'yes' to confirm or 'no' to re-enter.",
	ConfirmItem:       "Add this item?\n%s — ₹%s • GST %s%%\n\nType 'yes' to confirm or 'no' to re-enter.",
	ConfirmTerms:      "Payment terms: “%s”.\nType 'yes' to confirm or 'no' to re-enter. (Or type 'skip' for none)",
	NoTerms:           "— none —",
	PromptCustomer:    "Please enter the customer name:",
	PromptItem:        "Enter item as: description - price - gst%",
	PromptTerms:       "Enter payment terms (or type skip):",
	InvalidCustomer:   "Please enter a valid customer name, or type cancel.",
	NeedOneItem:       "Add at least one item before continuing.",
	NoSuchItem:        "No such item number.",
	ItemParseFailed:   "Couldn't parse item. Use: description - price - gst\nExample: \"5kg Atta - 450 - 5\"",
	IngestDone:        "✅ Processed invoice from **%s**. Added %d payable item(s), total %s. Type 'payables' to view, or 'ledger' to continue.",
	IngestFailed:      "❌ Invoice parsing failed: %s",
	Busy:              "⏳ Still working on your previous message…",
}
