package i18n

var hindi = func() Labels {
	l := english
	l.Lang = Hindi

	l.Ledger = "बही-खाता"
	l.Summary = "हिसाब-किताब"
	l.Inventory = "इन्वेंटरी"
	l.Creditors = "देनदार"
	l.Payables = "लेनदार"
	l.Settings = "सेटिंग्स"
	l.Invoice = "बिल"

	l.Welcome = "स्वागत है, %s! आप बही-खाता मोड में हैं। सीधे एंट्री टाइप करें, या कमांड: हिसाब-किताब / इन्वेंटरी / देनदार / लेनदार / सेटिंग्स / बिल।"
	l.RegisterWelcome = "🎉 रजिस्ट्रेशन सफल। स्वागत है %s! आप बही-खाता मोड में हैं। कमांड: हिसाब-किताब / इन्वेंटरी / देनदार / लेनदार / सेटिंग्स / बिल।"
	l.Instructions = `📋 एंट्री कैसे जोड़ें

👉 बिक्री:
: १००० → ₹१००० की नकद बिक्री
: १००० रमेश → ₹१००० की बिक्री, रमेश से भुगतान बाकी
: ५० यूनिट मैगी पैक ऑफ़ २ १००० → ५० यूनिट मैगी पैक ऑफ़ २ बेचा ₹१००० में

👉 खर्च:
: -२५० → ₹२५० नकद भुगतान
: -२५० रमेश नकद → रमेश को ₹२५० नकद भुगतान
: -२५० रमेश → रमेश से सामान/सेवा लिया, भुगतान बाकी

👉 भुगतान:
: रमेश ने १००० चुकाए → ग्राहक रमेश ने ₹१००० लौटाए (आय)
: दल विक्रेता को १२५० चुकाए → विक्रेता को ₹१२५० चुकाए (खर्च)`
	l.BackToLedger = "✅ वापस बही-खाता मोड में।"
	l.Synced = "🔄 सिंक हो गया। आज़माएँ: %s।"

	l.NoEntries = "अभी कोई एंट्री नहीं है।"
	l.InventoryTitle = "📦 इन्वेंटरी — माह-से-तारीख (SKU यूनिट):"
	l.NoSalesThisMonth = "इस महीने कोई बिक्री दर्ज नहीं हुई।"
	l.SummaryTitle = "📊 %s हिसाब-किताब:"
	l.TotalRevenue = "कुल आमदनी"
	l.TotalExpense = "कुल खर्च"
	l.NetProfit = "शुद्ध लाभ / हानि"
	l.RevenueCash = "नकद आमदनी"
	l.RevenueCredit = "उधार आमदनी"
	l.ExpenseCash = "नकद खर्च"
	l.ExpensePayable = "देय खर्च"
	l.DayWise = "दिनवार विवरण:"
	l.CreditorsTitle = "📒 देनदार — माह-से-तारीख"
	l.TotalReceivables = "कुल बकाया"
	l.CustomerWise = "ग्राहकवार:"
	l.PayablesTitle = "📚 लेनदार — माह-से-तारीख"
	l.TotalPayables = "कुल देय"
	l.VendorWise = "विक्रेतावार:"
	l.MonthNames = [12]string{"जनवरी", "फ़रवरी", "मार्च", "अप्रैल", "मई", "जून",
		"जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर"}

	l.SettingsPanel = `⚙️ सेटिंग्स:
• Store Name: %s
• Store Address: %s
• GST Number: %s
• Contact Number: %s

एक-एक फ़ील्ड अपडेट करें:
- store name: My Shop
- store address: 12, MG Road, Pune
- gst: 27ABCDE1234Z1Z5
- contact: 9876543210

'ledger' लिखकर वापस जाएँ।`
	l.SettingsSaved = "✅ सेव हो गया। `show` लिखें देखने के लिए, या कोई और फ़ील्ड अपडेट करें, या `ledger` लिखें।"
	l.SettingsFail = "❌ सेटिंग्स अपडेट नहीं हो पाईं।"
	l.SettingsLoadFail = "❌ सेटिंग्स लोड नहीं हो पाईं। कृपया फिर से कोशिश करें।"
	l.ConfirmField = "आपने लिखा:\n%s: %s\n\nपुष्टि के लिए 'yes' लिखें या 'no' लिखें।"

	l.EnterInvoice = "🧾 बिल बनाने का मोड।\nकदम 1/3 — ग्राहक का नाम लिखें:"
	l.EnterItemsHelp = `कदम 2/3 — आइटम जोड़ें (एक लाइन में एक):
फ़ॉर्मैट: विवरण - कीमत - जीएसटी%
उदाहरण: 5kg Atta - 450 - 5

अब आइटम टाइप करें। पूरा होने पर 'done' लिखें। 'remove N', 'preview', या 'cancel' लिख सकते हैं।`
	l.EnterTerms = "कदम 3/3 — भुगतान शर्तें लिखें (या 'skip' लिखें)।"
	l.Generating = "🛠️ आपका पीडीएफ बिल बनाया जा रहा है…"
	l.InvoiceFail = "❌ बिल बन नहीं सका।"
	l.InvoiceReady = "📎 बिल तैयार %s — %s"
	l.EmptyStoreWarning = "⚠️ आपके स्टोर विवरण खाली लग रहे हैं। सही हेडर के लिए \"settings\" में सेट करें।"
	l.Cancelled = "❎ रद्द। वापस बही-खाता।"
	l.RemovedItem = "🗑️ आइटम #%d हटा दिया।"
	l.ConfirmCustomer = "ग्राहक: “%s” — पुष्टि करें?\n'yes' लिखें या 'no' लिखें।"
	l.ConfirmItem = "यह आइटम जोड़ें?\n%s — ₹%s • GST %s%%\n\n'yes' लिखें या 'no' लिखें।"
	l.ConfirmTerms = "भुगतान शर्तें: “%s” — पुष्टि करें?\n'yes' लिखें या 'no' लिखें। (या 'skip' लिखें)"
	l.NoTerms = "— नहीं —"
	l.PromptCustomer = "कृपया ग्राहक का नाम लिखें:"
	l.PromptItem = "आइटम इस तरह लिखें: विवरण - कीमत - जीएसटी%"
	l.PromptTerms = "भुगतान शर्तें लिखें (या skip):"
	l.InvalidCustomer = "कृपया ग्राहक का सही नाम लिखें, या cancel लिखें।"
	l.NeedOneItem = "कृपया पहले एक आइटम जोड़ें।"
	l.NoSuchItem = "ऐसा कोई आइटम क्रमांक नहीं।"
	l.ItemParseFailed = "आइटम समझ नहीं आया। फ़ॉर्मैट: विवरण - कीमत - जीएसटी\nउदाहरण: \"5kg Atta - 450 - 5\""
	l.Busy = "⏳ आपका पिछला संदेश अभी प्रोसेस हो रहा है…"
	return l
}()
