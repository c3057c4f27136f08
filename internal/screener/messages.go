package screener

import (
	"fmt"

	"github.com/spigell/hr-screener/internal/session"
)

// User-visible reply texts.
const (
	msgWelcome = "Добро пожаловать в отдел кадров!" +
		"\n\nДля начала отправьте резюме ваших кандидатов в формате PDF." +
		"\nКогда все резюме будут отправлены, опишите вакансию, кандидатов на которую вы ищете." +
		"\nЗатем отправьте команду `/analyze` для начала процедуры выбора кандидата." +
		"\n\nДля удаления сохраненных резюме и вакансии отправьте команду `/clear`."

	msgCleared          = "Резюме и описание вакансии удалены!"
	msgReset            = "Я как заново родился... Начнем сначала!"
	msgAnalyzing        = "Приступаю к анализу..."
	msgMissingResumes   = "Сначала отправьте одно или более резюме."
	msgMissingJob       = "Сначала отправьте описание вакансии."
	msgOnlyPDF          = "Принимаются только резюме в формате PDF."
	msgFileAccepted     = "Файл принят!"
	msgJobAccepted      = "Описание вакансии принято!"
	msgExtractionFailed = "Не удалось прочитать текст из PDF. Проверьте файл и отправьте его снова."
	msgProviderFailed   = "Не удалось получить ответ от языковой модели. Попробуйте еще раз позже."
	msgUnsupported      = "Такое мне больше не присылай!"
)

var msgTooManyResumes = fmt.Sprintf(
	"Извините, слишком много кандидатов. Ограничьтесь %d резюме.", session.MaxResumes,
)
