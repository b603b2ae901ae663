package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TemplateManager рендерит html-шаблоны писем.
// Шаблоны грузятся из директории, при ее отсутствии берутся встроенные.
type TemplateManager struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewTemplateManager(dir string) (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range defaultTemplates {
		t, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse builtin template %s: %w", name, err)
		}
		tm.templates[name] = t
	}

	if dir != "" {
		if err := tm.loadDir(dir); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// loadDir загружает *.html из директории, перекрывая встроенные шаблоны
func (tm *TemplateManager) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		t, err := template.ParseFiles(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		tm.templates[name] = t
	}
	return nil
}

// Render рендерит шаблон по имени
func (tm *TemplateManager) Render(name string, data interface{}) (string, error) {
	tm.mu.RLock()
	t, ok := tm.templates[name]
	tm.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("email template %s not found", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Встроенные шаблоны писем
var defaultTemplates = map[string]string{
	TemplateVerification: `<html><body>
<h2>Подтверждение email</h2>
<p>Здравствуйте, {{.Name}}!</p>
<p>Чтобы подтвердить адрес электронной почты, перейдите по ссылке:</p>
<p><a href="{{.VerifyURL}}">Подтвердить email</a></p>
<p>Если вы не регистрировались, просто проигнорируйте это письмо.</p>
</body></html>`,

	TemplatePasswordReset: `<html><body>
<h2>Сброс пароля</h2>
<p>Здравствуйте, {{.Name}}!</p>
<p>Чтобы задать новый пароль, перейдите по ссылке:</p>
<p><a href="{{.ResetURL}}">Сбросить пароль</a></p>
<p>Ссылка действительна {{.TTLMinutes}} минут.</p>
<p>Если вы не запрашивали сброс, просто проигнорируйте это письмо.</p>
</body></html>`,

	TemplateWelcome: `<html><body>
<h2>Добро пожаловать!</h2>
<p>Здравствуйте, {{.Name}}!</p>
<p>Ваш email подтвержден, аккаунт активирован.</p>
<p><a href="{{.LoginURL}}">Войти</a></p>
</body></html>`,

	TemplateContactNotification: `<html><body>
<h2>Новое сообщение с формы обратной связи</h2>
<p><b>Имя:</b> {{.Name}}</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Сообщение:</b></p>
<p>{{.Message}}</p>
</body></html>`,
}
