package browser

// observeScript walks the DOM, tags interactive elements with a stable
// data-agent-id attribute, and returns a JSON summary for the LLM. Hidden
// input[type=file] elements are included: LinkedIn's Easy Apply upload
// controls are usually display:none behind a styled label.
const observeScript = `function() {
	const MAX_ITEMS = 400;

	document.querySelectorAll('[data-agent-id]').forEach(el => el.removeAttribute('data-agent-id'));

	const items = [];
	let id = 1;

	function visible(el) {
		const rect = el.getBoundingClientRect();
		if (rect.width < 1 || rect.height < 1) return false;
		const style = window.getComputedStyle(el);
		return style.visibility !== 'hidden' && style.display !== 'none' && style.opacity !== '0';
	}

	function label(el, fallback) {
		let t = el.innerText || el.getAttribute('aria-label') || el.getAttribute('placeholder')
			|| el.getAttribute('title') || el.value || '';
		t = t.replace(/[\n\r]+/g, ' ').trim().substring(0, 60);
		return t || fallback;
	}

	function push(el, tag, text) {
		el.setAttribute('data-agent-id', String(id));
		items.push({ id: id, tag: tag, text: text });
		id++;
	}

	for (const el of document.body.querySelectorAll('*')) {
		if (items.length >= MAX_ITEMS) break;
		if (el.hasAttribute('data-agent-id')) continue;

		const tag = el.tagName.toLowerCase();

		// File inputs first: keep them visible to the agent even when hidden.
		if (tag === 'input' && el.type === 'file') {
			push(el, 'file-input', '[UPLOAD] ' + (el.name || el.id || 'File upload'));
			continue;
		}
		if (!visible(el)) continue;

		if (tag === 'input' || tag === 'textarea') {
			if (el.type === 'checkbox' || el.type === 'radio') {
				const state = el.checked ? ' (x)' : ' ( )';
				push(el, 'checkbox', '[SELECT] ' + label(el, 'Option') + state);
			} else if (el.type === 'submit' || el.type === 'button') {
				push(el, 'button', '[ACTION] ' + label(el, 'Button'));
			} else {
				push(el, 'input', '[INPUT] ' + label(el, 'Text field'));
			}
			continue;
		}
		if (tag === 'select') {
			push(el, 'select', '[SELECT] ' + label(el, 'Dropdown'));
			continue;
		}
		if (el.getAttribute('contenteditable') === 'true' || el.getAttribute('role') === 'textbox') {
			push(el, 'input', '[INPUT] ' + label(el, 'Text field'));
			continue;
		}
		if (tag === 'a') {
			const clickable = el.getAttribute('href') || el.getAttribute('onclick')
				|| window.getComputedStyle(el).cursor === 'pointer';
			if (!clickable) continue;
			push(el, 'link', '[NAVIGATE] ' + label(el, 'Link'));
			continue;
		}
		if (tag === 'button' || el.getAttribute('role') === 'button') {
			push(el, 'button', '[ACTION] ' + label(el, 'Button'));
			continue;
		}
		if ((tag === 'div' || tag === 'span' || tag === 'li')
				&& window.getComputedStyle(el).cursor === 'pointer') {
			const rect = el.getBoundingClientRect();
			if (rect.width > 600 && rect.height > 400) continue;
			let parent = el.parentElement, covered = false;
			while (parent && parent !== document.body) {
				if (parent.hasAttribute('data-agent-id')) { covered = true; break; }
				parent = parent.parentElement;
			}
			if (covered) continue;
			push(el, 'clickable', '[CLICK] ' + label(el, 'Item'));
		}
	}

	return JSON.stringify(items);
}`

const scrollDownScript = `() => { window.scrollBy(0, window.innerHeight * 0.7); return true; }`

const scrollUpScript = `() => { window.scrollBy(0, -window.innerHeight * 0.7); return true; }`
