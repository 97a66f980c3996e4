package drug

import (
	"context"
	"fmt"
	"log"
	"strings"

	"grant-assistant-be/pkg/llm"
	"grant-assistant-be/pkg/rag/language"
	"grant-assistant-be/pkg/store"
	"grant-assistant-be/pkg/vectorstore"
)

const searchK = 5

const drugPromptTemplate = `
Sen uzman bir ilaç danışmanı yapay zekasın. İlaçların yan etkileri, yemek etkileşimleri ve kullanım tavsiyeleri konusunda bilgi sağlarsın.

ÖNEMLI GÜVENLİK KURALLARI:
1. Bu bilgiler yalnızca genel bilgilendirme amaçlıdır
2. Kesinlikle teşhis koymak veya tedavi önermek yok
3. Her zaman doktora danışmayı tavsiye et
4. Acil durumlarda hemen doktora gitmeyi söyle

Kullanıcının Sorusu: %s

İlaç Bilgileri:
%s

Dil Tercihi: %s

Yanıtlarken:
1. Sorulan ilaç hakkında temel bilgiyi ver
2. Yan etkileri açıkla
3. Yemek etkileşimlerini belirt (aç karın mı tok karın mı)
4. Kullanım zamanlaması hakkında bilgi ver
5. Önemli uyarıları ekle
6. Soruya uygun dilde yanıt ver (Türkçe/İngilizce)
7. Güvenlik uyarısı ile bitir

Yanıt:
`

const systemMessage = "Sen uzman bir ilaç danışmanı yapay zekasın."

// Advice is the advisor's result for one consultation.
type Advice struct {
	Response  string
	Language  store.Language
	Documents []store.Document
}

// Advisor answers medication questions over the drug chunk collection.
// Every failure path returns a bilingual fixed message; Advise never
// returns an error to its caller's user.
type Advisor struct {
	llm    llm.LLMProvider
	search vectorstore.SearchProvider
	logger *log.Logger
}

func NewAdvisor(provider llm.LLMProvider, search vectorstore.SearchProvider, logger *log.Logger) *Advisor {
	return &Advisor{
		llm:    provider,
		search: search,
		logger: logger,
	}
}

// Advise runs one consultation: safety gate, drug document search,
// prompt assembly, one LLM call, safety warning suffix.
func (a *Advisor) Advise(ctx context.Context, query string) Advice {
	lang := language.Detect(query)

	if len(strings.Fields(strings.TrimSpace(query))) < 2 {
		return Advice{Response: safetyMessage(lang), Language: lang}
	}

	docs, err := a.search.Search(ctx, query, searchK)
	if err != nil {
		a.logger.Printf("[ERROR] Drug document search failed: %v", err)
		docs = nil
	}
	if len(docs) == 0 {
		return Advice{Response: noInfoMessage(lang), Language: lang}
	}

	languageText := "English"
	if lang == store.LanguageTurkish {
		languageText = "Türkçe"
	}

	prompt := fmt.Sprintf(drugPromptTemplate, query, formatDrugDocuments(docs), languageText)

	response, err := a.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemMessage},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.1), llm.WithMaxTokens(2000))
	if err != nil {
		a.logger.Printf("[ERROR] Drug consultation failed: %v", err)
		return Advice{Response: errorMessage(lang), Language: lang, Documents: docs}
	}

	return Advice{
		Response:  response + "\n\n" + safetyWarning(lang),
		Language:  lang,
		Documents: docs,
	}
}

func formatDrugDocuments(documents []store.Document) string {
	var blocks []string
	for i, doc := range documents {
		drugName := doc.Meta.DrugName
		if drugName == "" {
			drugName = "Bilinmeyen İlaç"
		}
		source := doc.Meta.Source
		if source == "" {
			source = "OnSIDES"
		}

		blocks = append(blocks, fmt.Sprintf(`
İlaç Bilgisi %d - %s (Kaynak: %s):
%s
---
`, i+1, drugName, source, doc.Content))
	}
	return strings.Join(blocks, "\n")
}

func safetyMessage(lang store.Language) string {
	if lang == store.LanguageTurkish {
		return `🏥 **DrugBot Güvenlik Mesajı**

Bu sistem ilaç bilgileri hakkında genel bilgilendirme sağlar.

⚠️ **Önemli Uyarılar:**
- Kesinlikle teşhis koymam veya tedavi önermem
- Acil durumlarda hemen doktora gidin
- İlaç kullanımı konusunda mutlaka doktorunuza danışın

Lütfen sorunuzu daha detaylı olarak belirtin.`
	}
	return `🏥 **DrugBot Safety Message**

This system provides general information about medications.

⚠️ **Important Warnings:**
- I never diagnose or recommend treatment
- In emergencies, consult a doctor immediately
- Always consult your doctor about medication use

Please specify your question in more detail.`
}

func noInfoMessage(lang store.Language) string {
	if lang == store.LanguageTurkish {
		return `🔍 **Bilgi Bulunamadı**

Aradığınız ilaç hakkında veritabanımda bilgi bulunmadı.

💡 **Öneriler:**
- İlaç adını doğru yazdığınızdan emin olun
- Farklı kelimeler kullanarak tekrar deneyin
- Doktorunuza veya eczacınıza danışın

⚠️ **Güvenlik Uyarısı:** Bu sistem yalnızca genel bilgilendirme amaçlıdır.`
	}
	return `🔍 **No Information Found**

No information about the requested medication was found in our database.

💡 **Suggestions:**
- Make sure you spelled the medication name correctly
- Try different keywords
- Consult your doctor or pharmacist

⚠️ **Safety Warning:** This system is for general information only.`
}

func safetyWarning(lang store.Language) string {
	if lang == store.LanguageTurkish {
		return `🚨 **ÖNEMLİ GÜVENLİK UYARISI**

Bu bilgiler yalnızca genel bilgilendirme amaçlıdır:
- Kesinlikle tıbbi tavsiye değildir
- Doktorunuzun reçetesini değiştirmeyin
- Yan etki yaşarsanız hemen doktora gidin
- Acil durumlarda 112'yi arayın

💊 **Doktorunuza danışmadan ilaç kullanmayın!**`
	}
	return `🚨 **IMPORTANT SAFETY WARNING**

This information is for general educational purposes only:
- This is not medical advice
- Do not change your doctor's prescription
- If you experience side effects, see a doctor immediately
- Call emergency services in urgent situations

💊 **Do not use medication without consulting your doctor!**`
}

func errorMessage(lang store.Language) string {
	if lang == store.LanguageTurkish {
		return `❌ **Sistem Hatası**

Üzgünüm, sorgunuzu işlerken bir hata oluştu.

💡 **Öneriler:**
- Lütfen tekrar deneyin
- Sorunuzu farklı şekilde sorun
- Doktorunuza danışın

⚠️ **Güvenlik:** Bu sistem tıbbi tavsiye vermez.`
	}
	return `❌ **System Error**

Sorry, an error occurred while processing your question.

💡 **Suggestions:**
- Please try again
- Rephrase your question
- Consult your doctor

⚠️ **Safety:** This system does not provide medical advice.`
}
